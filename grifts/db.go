package grifts

import (
	"fmt"

	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/pop/v6"

	"github.com/verixa-platform/verixa-api/api"
	"github.com/verixa-platform/verixa-api/models"
)

var _ = grift.Namespace("db", func() {
	grift.Desc("seed", "Seeds a database")
	_ = grift.Add("seed", func(c *grift.Context) error {
		countUsers := models.Users{}
		count, err := models.DB.Count(countUsers)
		if err != nil {
			return err
		}

		if count > 1 {
			fmt.Printf("\nINFO: It appears that the grifts have already been run, "+
				"since there are already %v users.\n", count)
			return nil
		}

		return models.DB.Transaction(func(tx *pop.Connection) error {
			users, err := createUserFixtures(tx)
			if err != nil {
				return err
			}

			claims, err := createClaimFixtures(tx, users)
			if err != nil {
				return err
			}

			return createTaskFixtures(tx, users, claims)
		})
	})
})

func createUserFixtures(tx *pop.Connection) (map[api.UserRole]models.User, error) {
	users := map[api.UserRole]models.User{}

	wallets := map[api.UserRole]string{
		api.UserRolePatient:   "0x1000000000000000000000000000000000000001",
		api.UserRoleIssuer:    "0x2000000000000000000000000000000000000002",
		api.UserRoleInsurance: "0x3000000000000000000000000000000000000003",
		api.UserRoleValidator: "0x4000000000000000000000000000000000000004",
	}

	for role, wallet := range wallets {
		user := models.User{
			WalletAddress: wallet,
			Role:          role,
		}
		if err := user.Create(tx, "seed-password"); err != nil {
			return nil, fmt.Errorf("seeding %s user: %w", role, err)
		}
		users[role] = user
	}

	return users, nil
}

func createClaimFixtures(tx *pop.Connection, users map[api.UserRole]models.User) (models.Claims, error) {
	claims := make(models.Claims, 3)
	for i := range claims {
		claims[i] = models.Claim{
			PatientID:   users[api.UserRolePatient].ID,
			InsuranceID: users[api.UserRoleInsurance].ID,
			ReportURL:   fmt.Sprintf("https://docs.example.com/seed-report-%d.pdf", i),
			Status:      api.ClaimStatusPending,
		}
		if err := claims[i].Create(tx); err != nil {
			return nil, fmt.Errorf("seeding claim %d: %w", i, err)
		}
	}
	return claims, nil
}

func createTaskFixtures(tx *pop.Connection, users map[api.UserRole]models.User, claims models.Claims) error {
	task, err := models.CreateTaskFromInput(tx, users[api.UserRoleInsurance].ID, api.TaskCreateInput{
		ContractAddress:    "0x5000000000000000000000000000000000000005",
		TaskID:             1,
		DocCID:             "bafybeiseeddoccid",
		RequiredValidators: 2,
		Reward:             "1.25",
		ClaimID:            claims[0].ID,
	})
	if err != nil {
		return fmt.Errorf("seeding task: %w", err)
	}

	fmt.Printf("seeded task %v for claim %v\n", task.TaskID, claims[0].ID)
	return nil
}
