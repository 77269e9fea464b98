package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateVerificationCode returns a numeric code without a leading zero
func GenerateVerificationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	var sb strings.Builder
	sb.WriteByte(byte('1' + randomInt(9)))
	for i := 1; i < length; i++ {
		sb.WriteByte(byte('0' + randomInt(10)))
	}

	return sb.String()
}

// GenerateReferralCode builds a provider referral code, e.g. CW-7KQ2MZ
func GenerateReferralCode() string {
	var sb strings.Builder
	sb.WriteString("CW-")
	for i := 0; i < 6; i++ {
		sb.WriteByte(referralAlphabet[randomInt(len(referralAlphabet))])
	}
	return sb.String()
}

func randomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return int(n.Int64())
}
