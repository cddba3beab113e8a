package lib

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatNumber groups digits the Indonesian way: 90037 -> "90.037".
func FormatNumber(n int64) string {
	return idPrinter.Sprintf("%d", n)
}

// FormatRupiah renders an amount as "Rp 90.037".
func FormatRupiah(n int64) string {
	return "Rp " + FormatNumber(n)
}
