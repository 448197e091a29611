package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid chequea que el dominio del mail exista de verdad
// antes de aceptar el registro. Primero MX, después A/AAAA como fallback
// para dominios que reciben mail sin registro MX.
func IsEmailDomainValid(email string) bool {
	local, domain, found := splitEmail(email)
	if !found || local == "" || domain == "" {
		return false
	}

	if !strings.Contains(domain, ".") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}

func splitEmail(email string) (local, domain string, found bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "", "", false
	}
	return email[:at], email[at+1:], true
}
