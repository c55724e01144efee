// Package seed populates the database with development and test fixtures.
package seed

import (
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"

	"github.com/conectapro/backend/internal/models"
)

// Countries offered in the profile form.
var Countries = []string{
	"Argentina", "Bolivia", "Brasil", "Chile", "Colombia", "Costa Rica",
	"Cuba", "Ecuador", "El Salvador", "España", "Guatemala", "Honduras",
	"México", "Nicaragua", "Panamá", "Paraguay", "Perú", "Puerto Rico",
	"República Dominicana", "Uruguay", "Venezuela",
}

// Seeder writes fixture data.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a seeder over the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

var marketCatalog = map[string][]string{
	"Tecnología":   {"Desarrollador Backend", "Desarrollador Frontend", "DevOps", "Data Scientist", "QA"},
	"Salud":        {"Médico General", "Enfermería", "Fisioterapeuta", "Nutricionista"},
	"Construcción": {"Arquitecto", "Ingeniero Civil", "Maestro de Obra", "Electricista"},
	"Gastronomía":  {"Chef", "Pastelero", "Sommelier", "Barista"},
	"Educación":    {"Profesor", "Tutor", "Diseñador Instruccional"},
	"Marketing":    {"Community Manager", "SEO Specialist", "Diseñador Gráfico", "Copywriter"},
}

// SeedDev fills the database with a realistic development dataset.
func (s *Seeder) SeedDev() error {
	gofakeit.Seed(0)

	markets, professions, err := s.seedCatalog()
	if err != nil {
		return err
	}

	const userCount = 25
	users := make([]models.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := models.User{
			Email:        fmt.Sprintf("dev%02d@%s", i, gofakeit.DomainName()),
			PasswordHash: "$2a$10$devpassworddevpassworddevpasswoQ2hC6O", // not a valid login
		}
		if err := s.db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}

		profile := models.Profile{
			UserID:   user.ID,
			Username: gofakeit.Username(),
			FullName: gofakeit.Name(),
			Country:  Countries[gofakeit.Number(0, len(Countries)-1)],
			AboutMe:  gofakeit.Sentence(12),
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}

		market := markets[gofakeit.Number(0, len(markets)-1)]
		if err := s.db.Create(&models.UserMarket{UserID: user.ID, MarketID: market.ID}).Error; err != nil {
			return fmt.Errorf("seed user market: %w", err)
		}
		for _, p := range professions {
			if p.MarketID == market.ID && gofakeit.Bool() {
				if err := s.db.Create(&models.UserProfession{UserID: user.ID, ProfessionID: p.ID}).Error; err != nil {
					return fmt.Errorf("seed user profession: %w", err)
				}
				break
			}
		}

		users = append(users, user)
	}

	posts := make([]models.Post, 0, userCount*3)
	for _, user := range users {
		for i := 0; i < gofakeit.Number(1, 4); i++ {
			post := models.Post{
				UserID:   user.ID,
				MarketID: markets[gofakeit.Number(0, len(markets)-1)].ID,
				Content:  gofakeit.Paragraph(1, 3, 12, " "),
			}
			if err := s.db.Create(&post).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			posts = append(posts, post)
		}
	}

	for _, post := range posts {
		for _, user := range users {
			if user.ID == post.UserID || gofakeit.Number(0, 3) != 0 {
				continue
			}
			if err := s.db.Create(&models.PostLike{PostID: post.ID, UserID: user.ID}).Error; err != nil {
				return fmt.Errorf("seed like: %w", err)
			}
			if gofakeit.Bool() {
				comment := models.PostComment{
					PostID:  post.ID,
					UserID:  user.ID,
					Content: gofakeit.Sentence(8),
				}
				if err := s.db.Create(&comment).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
		}
	}

	for i := 0; i+1 < len(users); i += 2 {
		conn := models.Connection{
			FollowerID:  users[i].ID,
			FollowingID: users[i+1].ID,
			Status:      models.ConnectionStatusAccepted,
		}
		if err := s.db.Create(&conn).Error; err != nil {
			return fmt.Errorf("seed connection: %w", err)
		}
	}

	log.Printf("seeded %d users, %d posts, %d markets", len(users), len(posts), len(markets))
	return nil
}

// SeedTest writes the minimal dataset integration tests expect: the market
// catalog and nothing else.
func (s *Seeder) SeedTest() error {
	gofakeit.Seed(42)
	_, _, err := s.seedCatalog()
	return err
}

// Clean removes all rows from every table, dependents first.
func (s *Seeder) Clean() error {
	tables := []string{
		"notifications", "connections", "saved_posts", "post_comments",
		"post_likes", "posts", "jobs", "user_professions", "user_markets",
		"professions", "markets", "profiles", "users",
	}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) seedCatalog() ([]models.Market, []models.Profession, error) {
	var markets []models.Market
	var professions []models.Profession

	for name, jobs := range marketCatalog {
		market := models.Market{Name: name}
		if err := s.db.Where("name = ?", name).FirstOrCreate(&market).Error; err != nil {
			return nil, nil, fmt.Errorf("seed market: %w", err)
		}
		markets = append(markets, market)

		for _, jobName := range jobs {
			profession := models.Profession{MarketID: market.ID, Name: jobName}
			err := s.db.Where("market_id = ? AND name = ?", market.ID, jobName).
				FirstOrCreate(&profession).Error
			if err != nil {
				return nil, nil, fmt.Errorf("seed profession: %w", err)
			}
			professions = append(professions, profession)
		}
	}

	return markets, professions, nil
}
