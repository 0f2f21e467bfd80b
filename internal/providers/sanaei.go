package providers

import "context"

type Sanaei struct {
	*restClient
}

func NewSanaei(baseURL, token string) *Sanaei {
	return &Sanaei{restClient: newRESTClient("sanaei", baseURL, token)}
}

func (s *Sanaei) CreateUser(ctx context.Context, username, password string, quotaGB float64, days int) (map[string]any, error) {
	payload := map[string]any{
		"username": username,
		"password": password,
		"quota_gb": quotaGB,
		"days":     days,
	}
	return s.post(ctx, "/clients", payload)
}

func (s *Sanaei) GetUsage(ctx context.Context, username string) (map[string]any, error) {
	return s.get(ctx, "/clients/"+username+"/usage")
}
