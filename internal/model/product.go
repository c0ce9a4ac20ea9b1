package model

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Status is the payment status of a product.
type Status string

const (
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

// PlaceholderImageURL is used when no image was supplied or the upload failed.
const PlaceholderImageURL = "https://via.placeholder.com/150?text=No+Image"

// productIDSuffixLen is the number of base36 characters appended to the
// millisecond timestamp in a product ID.
const productIDSuffixLen = 6

// Product represents a single purchased item embedded in a customer record.
type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Status Status  `json:"status"`
	Image  string  `json:"image"`
	Date   string  `json:"date"`
}

// NewProduct builds a product from raw form values. Price and status are
// normalised rather than rejected; the creation date is assigned here.
func NewProduct(name, price, status, imageURL string) Product {
	return Product{
		ID:     NewProductID(),
		Name:   name,
		Price:  ParsePrice(price),
		Status: NormalizeStatus(status),
		Image:  imageURL,
		Date:   time.Now().UTC().Format(time.RFC3339),
	}
}

// NewProductID generates a product identifier from the current millisecond
// timestamp plus a short random base36 suffix. Collision-resistant within a
// single customer's product list, not globally unique.
func NewProductID() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	for i := 0; i < productIDSuffixLen; i++ {
		sb.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return sb.String()
}

// ParsePrice coerces a raw price value to a number. Missing or unparsable
// input becomes 0. Negative prices are accepted as-is.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// NormalizeStatus maps any input to the status allow-list: the exact literal
// "paid" stays paid, everything else (empty, typos, unknown values) becomes
// unpaid. Silent correction, never a validation error.
func NormalizeStatus(s string) Status {
	if s == string(StatusPaid) {
		return StatusPaid
	}
	return StatusUnpaid
}
