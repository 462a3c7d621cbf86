package domain

import "testing"

func TestIdentity(t *testing.T) {
	tests := []struct {
		name      string
		identity  Identity
		isUser    bool
		isSession bool
		valid     bool
		userID    int64
		sessionID string
	}{
		{
			name:     "user identity",
			identity: ForUser(42),
			isUser:   true,
			valid:    true,
			userID:   42,
		},
		{
			name:      "session identity",
			identity:  ForSession("abc123"),
			isSession: true,
			valid:     true,
			sessionID: "abc123",
		},
		{
			name:     "zero value is invalid",
			identity: Identity{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.identity.IsUser(); got != tt.isUser {
				t.Errorf("IsUser() = %v, want %v", got, tt.isUser)
			}
			if got := tt.identity.IsSession(); got != tt.isSession {
				t.Errorf("IsSession() = %v, want %v", got, tt.isSession)
			}
			if got := tt.identity.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
			if got := tt.identity.UserID(); got != tt.userID {
				t.Errorf("UserID() = %d, want %d", got, tt.userID)
			}
			if got := tt.identity.SessionID(); got != tt.sessionID {
				t.Errorf("SessionID() = %q, want %q", got, tt.sessionID)
			}
		})
	}
}

func TestIdentityString(t *testing.T) {
	if got := ForUser(7).String(); got != "user:7" {
		t.Errorf("String() = %q, want user:7", got)
	}
	if got := ForSession("s1").String(); got != "session:s1" {
		t.Errorf("String() = %q, want session:s1", got)
	}
	if got := (Identity{}).String(); got != "identity:empty" {
		t.Errorf("String() = %q, want identity:empty", got)
	}
}

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{19.98, 19.98},
		{3.33 * 3, 9.99},
		{0.1 + 0.2, 0.3},
		{5.999999999, 6},
	}

	for _, tt := range tests {
		if got := RoundMoney(tt.in); got != tt.want {
			t.Errorf("RoundMoney(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
