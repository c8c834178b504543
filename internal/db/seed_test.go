package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mbodji/metallerie-backend/internal/catalog"
	"github.com/mbodji/metallerie-backend/internal/models"
)

func TestSeedIdempotent(t *testing.T) {
	d, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := AutoMigrate(d); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ADMIN_EMAIL", "admin@metallerie-durand.fr")
	t.Setenv("ADMIN_PASSWORD", "atelier69")
	Seed(d)
	Seed(d)

	var famCount int64
	d.Model(&models.ProductFamily{}).Count(&famCount)
	if famCount != int64(len(catalog.Families)) {
		t.Fatalf("expected %d families, got %d", len(catalog.Families), famCount)
	}
	// Ensure baseline entries exist exactly once (idempotency)
	var c1 int64
	d.Model(&models.ProductFamily{}).Where("slug = ?", "garde-corps").Count(&c1)
	if c1 != 1 {
		t.Fatalf("garde-corps family duplicated or missing: %d", c1)
	}
	var admins int64
	d.Model(&models.User{}).Where("email = ? AND is_admin = ?", "admin@metallerie-durand.fr", true).Count(&admins)
	if admins != 1 {
		t.Fatalf("admin account duplicated or missing: %d", admins)
	}
}

func TestNormalizeDSN(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@host:5432/metallerie?sslmode=disable": "postgres://u:p@host:5432/metallerie?sslmode=disable",
		"  host=localhost user=u dbname=metallerie  ":         "host=localhost user=u dbname=metallerie sslmode=disable",
		"host=localhost sslmode=require":                      "host=localhost sslmode=require",
		"":                                                    "",
	}
	for in, want := range cases {
		if got := NormalizeDSN(in); got != want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", in, got, want)
		}
	}
}
