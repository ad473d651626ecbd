package seed

import (
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/config"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const demoCompanyName = "Shiftwise Demo"

var demoEmployees = []struct {
	Username string
	FullName string
	Email    string
	Role     domain.Role
}{
	{"dana", "Dana Peretz", "dana@shiftwise.dev", domain.RoleAdmin},
	{"yael", "Yael Mizrahi", "yael@shiftwise.dev", domain.RoleEmployee},
	{"noam", "Noam Levi", "noam@shiftwise.dev", domain.RoleEmployee},
	{"omer", "Omer Cohen", "omer@shiftwise.dev", domain.RoleEmployee},
	{"tamar", "Tamar Friedman", "tamar@shiftwise.dev", domain.RoleEmployee},
	{"avi", "Avi Shapiro", "avi@shiftwise.dev", domain.RoleEmployee},
	{"rivka", "Rivka Katz", "rivka@shiftwise.dev", domain.RoleEmployee},
	{"eli", "Eli Baruch", "eli@shiftwise.dev", domain.RoleEmployee},
}

// SeedDemoCompany creates the demo company and its employees. Existing
// rows are left untouched so the seeder can run repeatedly.
func SeedDemoCompany(cfg *config.Config, repo *repository.Repository) (*domain.Company, error) {
	company, err := repo.GetCompanyByName(demoCompanyName)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		company = &domain.Company{Name: demoCompanyName}
		if err := repo.CreateCompany(company); err != nil {
			return nil, err
		}
		slog.Info("demo company created", "id", company.ID)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created := 0
	for _, employee := range demoEmployees {
		user := &domain.User{
			CompanyID:    company.ID,
			Username:     employee.Username,
			PasswordHash: string(passwordHash),
			FullName:     employee.FullName,
			Email:        employee.Email,
			Role:         employee.Role,
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("failed to create demo user", "username", employee.Username, "error", err)
			continue
		}
		created++
	}

	slog.Info("demo users created", "count", created)
	return company, nil
}

// SeedAvailabilities submits a random availability grid for every user of
// the demo company. Roughly two thirds of the cells are marked available.
func SeedAvailabilities(repo *repository.Repository, offset int) error {
	company, err := repo.GetCompanyByName(demoCompanyName)
	if err != nil {
		return err
	}

	users, err := repo.GetUsersByCompany(company.ID)
	if err != nil {
		return err
	}

	week := domain.WeekKeyFor(time.Now(), offset)

	created := 0
	for _, user := range users {
		grid := domain.NewGrid()
		for _, shift := range domain.Shifts {
			for _, day := range domain.Days {
				grid.Cell(shift, day).IsAvailable = rand.Intn(3) < 2
			}
		}

		av := &domain.WeekAvailability{
			CompanyID: company.ID,
			WeekKey:   week,
			UserID:    user.ID,
			Grid:      grid,
		}
		if err := repo.CreateWeekAvailability(av); err != nil {
			slog.Error("failed to create availability", "username", user.Username, "error", err)
			continue
		}
		created++
	}

	slog.Info("demo availabilities created", "week", string(week), "count", created)
	return nil
}
