package enquiry

import (
	"fmt"
	"math/rand"
	"time"
)

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReferenceNumber issues a reference of the form ENQ-YYYYMMDD-XXXXX,
// where X is random alphanumeric. Uniqueness within a day is probabilistic;
// the store's unique index is the final arbiter.
func NewReferenceNumber() string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = refAlphabet[rand.Intn(len(refAlphabet))]
	}
	return fmt.Sprintf("ENQ-%s-%s", time.Now().Format("20060102"), suffix)
}
