package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateNumber builds a human-readable quote number:
//
//	DEV-<année>-<suffixe aléatoire><suffixe horaire base36>
//
// Uniqueness is statistical (random part ≈ 1e12 values, plus a millisecond
// derived tail); the unique index on quotes.numero is the hard backstop — a
// collision surfaces as a constraint violation at insert time.
func (s *QuoteService) GenerateNumber(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:10]
	tail := strings.ToUpper(strconv.FormatInt(now.UnixMilli()%46656, 36)) // 3 caractères base36 max
	return fmt.Sprintf("DEV-%d-%s%s", now.Year(), random, tail)
}
