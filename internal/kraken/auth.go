package kraken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrCredentials marks key material that cannot be used for signing,
// as opposed to transport failures. Callers can errors.Is on it to
// report a configuration problem instead of a network one.
var ErrCredentials = errors.New("unusable credentials")

// Sign computes the API-Sign header value for a private request:
//
//	base64(HMAC-SHA512(path + SHA256(nonce + postData), base64decode(secret)))
//
// path is the URI path of the endpoint (e.g. "/0/private/OpenOrders"),
// postData the url-encoded form body that will be sent, and nonce the
// same nonce embedded in that body.
func Sign(path, secret string, nonce int64, postData string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: api secret is not valid base64: %v", ErrCredentials, err)
	}

	digest := sha256.Sum256([]byte(strconv.FormatInt(nonce, 10) + postData))

	mac := hmac.New(sha512.New, key)
	mac.Write([]byte(path))
	mac.Write(digest[:])

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// privateForm builds the form body for a private request.
// Every private call carries a fresh nonce; the OTP rides along when
// the key has two-factor auth enabled.
func privateForm(nonce int64, otp string) url.Values {
	form := url.Values{}
	form.Set("nonce", strconv.FormatInt(nonce, 10))
	if otp != "" {
		form.Set("otp", otp)
	}
	return form
}
