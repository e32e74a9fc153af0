package supabase

import (
	"context"

	supa "github.com/supabase-community/supabase-go"

	"civiccents-service/internal/domain"
)

// AuthProvider resolves Supabase access tokens to the signed-in user.
type AuthProvider struct {
	client *supa.Client
}

func NewAuthProvider(client *supa.Client) *AuthProvider {
	return &AuthProvider{client: client}
}

func (p *AuthProvider) Me(_ context.Context, accessToken string) (domain.User, error) {
	if accessToken == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	resp, err := p.client.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return domain.User{}, domain.ErrUnauthenticated
	}
	if resp.Email == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return domain.User{Email: resp.Email}, nil
}
