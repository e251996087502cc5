package app

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Seed — пользователи и товары для локального запуска.
// Учётные записи и каталог ведутся вне ядра, сид только заполняет пустое хранилище.
type Seed struct {
	Users    []SeedUser    `yaml:"users"`
	Products []SeedProduct `yaml:"products"`
}

// SeedUser описывает пользователя в сид-файле.
type SeedUser struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// SeedProduct описывает товар. Price задаётся строкой, чтобы не терять точность.
type SeedProduct struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Stock int    `yaml:"stock"`
}

// LoadSeedFile читает сид-файл.
func LoadSeedFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed разбирает YAML сида и проверяет цены.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	for _, p := range seed.Products {
		if _, err := decimal.NewFromString(p.Price); err != nil {
			return Seed{}, fmt.Errorf("product %q: invalid price %q: %w", p.ID, p.Price, err)
		}
	}
	return seed, nil
}

// applySeed заводит пользователей и товары. Уже существующие записи пропускаются.
func applySeed(ctx context.Context, seed Seed, users domain.UserRepository, products domain.ProductRepository, logger *log.Entry) (int, error) {
	created := 0
	for _, p := range seed.Products {
		product := domain.Product{
			ID:    p.ID,
			Name:  p.Name,
			Price: decimal.RequireFromString(p.Price),
			Stock: p.Stock,
		}
		ok, err := seedOne(products.Create(ctx, product))
		if err != nil {
			return created, fmt.Errorf("seed product %q: %w", p.ID, err)
		}
		if ok {
			created++
		}
	}
	for _, u := range seed.Users {
		ok, err := seedOne(users.Create(ctx, domain.User{ID: u.ID, Name: u.Name, Email: u.Email}))
		if err != nil {
			return created, fmt.Errorf("seed user %q: %w", u.ID, err)
		}
		if ok {
			created++
		}
	}

	logger.WithFields(log.Fields{
		"users":    len(seed.Users),
		"products": len(seed.Products),
		"created":  created,
	}).Info("seed applied")
	return created, nil
}

func seedOne(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case domain.KindOf(err) == domain.KindConflict:
		return false, nil
	default:
		return false, err
	}
}
