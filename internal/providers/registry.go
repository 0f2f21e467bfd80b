package providers

import "github.com/moslemp47/vpnpanel1/internal/config"

const (
	ProviderMarzban = "marzban"
	ProviderSanaei  = "sanaei"
)

// Registry resolves a provider name to its configured client.
type Registry struct {
	marzban Client
	sanaei  Client
}

func NewRegistry(cfg *config.Config) *Registry {
	return &Registry{
		marzban: NewMarzban(cfg.MarzbanAPIURL, cfg.MarzbanToken),
		sanaei:  NewSanaei(cfg.SanaeiAPIURL, cfg.SanaeiToken),
	}
}

// Get returns the client for name; unknown names fall back to marzban.
func (r *Registry) Get(name string) Client {
	if name == ProviderSanaei {
		return r.sanaei
	}
	return r.marzban
}
