package auth

import (
	"context"
	"testing"
)

func TestIdentityContextRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
	}{
		{
			name:     "basic user",
			identity: Identity{ID: 1, Email: "alice@example.com"},
		},
		{
			name:     "another user",
			identity: Identity{ID: 42, Email: "bob@example.com"},
		},
		{
			name:     "zero identity",
			identity: Identity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := WithIdentity(context.Background(), tt.identity)
			got, ok := IdentityFromContext(ctx)
			if !ok {
				t.Fatal("expected identity in context, got none")
			}
			if got.ID != tt.identity.ID {
				t.Errorf("ID = %d, want %d", got.ID, tt.identity.ID)
			}
			if got.Email != tt.identity.Email {
				t.Errorf("Email = %q, want %q", got.Email, tt.identity.Email)
			}
		})
	}
}

func TestIdentityFromContextMissing(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	if ok {
		t.Error("expected no identity in empty context")
	}
}
