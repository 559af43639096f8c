package service

import "strings"

var paymentMethods = map[string]struct{}{
	"alfamart": {}, "indomart": {}, "lawson": {},
	"dana": {}, "ovo": {}, "gopay": {}, "linkaja": {}, "jenius": {}, "fastpay": {}, "kudo": {},
	"bri": {}, "mandiri": {}, "bca": {}, "bni": {}, "bukopin": {}, "e-banking": {},
	"visa": {}, "mastercard": {}, "discover": {}, "american express": {}, "paypal": {},
}

func NormalizePaymentMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

// IsPaymentMethod reports whether method names a supported payment channel, ignoring case.
func IsPaymentMethod(method string) bool {
	_, ok := paymentMethods[NormalizePaymentMethod(method)]
	return ok
}
