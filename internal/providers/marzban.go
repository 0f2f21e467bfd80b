package providers

import "context"

type Marzban struct {
	*restClient
}

func NewMarzban(baseURL, token string) *Marzban {
	return &Marzban{restClient: newRESTClient("marzban", baseURL, token)}
}

func (m *Marzban) CreateUser(ctx context.Context, username, password string, quotaGB float64, days int) (map[string]any, error) {
	payload := map[string]any{
		"username": username,
		"password": password,
		"quota_gb": quotaGB,
		"days":     days,
	}
	return m.post(ctx, "/users", payload)
}

func (m *Marzban) GetUsage(ctx context.Context, username string) (map[string]any, error) {
	return m.get(ctx, "/users/"+username+"/usage")
}
