package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		xff    string
		xReal  string
		want   string
	}{
		{"direct public peer", "203.0.113.7:5000", "", "", "203.0.113.7"},
		{"public peer cannot spoof", "203.0.113.7:5000", "198.51.100.1", "", "203.0.113.7"},
		{"local proxy forwards", "127.0.0.1:41000", "198.51.100.1, 10.0.0.2", "", "198.51.100.1"},
		{"private proxy x-real-ip", "10.0.0.5:41000", "", "198.51.100.9", "198.51.100.9"},
		{"garbage header ignored", "10.0.0.5:41000", "not-an-ip", "", "10.0.0.5"},
		{"no port", "192.0.2.1", "", "", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xReal != "" {
				r.Header.Set("X-Real-IP", tt.xReal)
			}
			assert.Equal(t, tt.want, RealClientIP(r))
		})
	}
}
