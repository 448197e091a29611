package validators

import "strings"

// NormalizePhone deja el teléfono en una forma canónica: solo dígitos,
// con el "+" inicial si venía. El teléfono identifica al cliente en el
// booking público, así que "11 5555-1234" y "1155551234" tienen que
// resolver al mismo registro.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func IsPhoneValid(phone string) bool {
	n := len(strings.TrimPrefix(NormalizePhone(phone), "+"))
	return n >= 7 && n <= 15
}
