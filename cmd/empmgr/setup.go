package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/O-KenneDevWorks/Employee-Manager/internal/persistence"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/repository"
	"github.com/O-KenneDevWorks/Employee-Manager/internal/service"
)

var (
	setupReset bool
	setupSeed  string
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the database, apply the schema and optionally seed it",
	Example: "  empmgr setup\n" +
		"  empmgr setup --reset --seed db/seeds.yaml",
	Args: cobra.NoArgs,
	RunE: runSetup,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema to the configured database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			return err
		}
		successColor.Println("Schema is up to date.")
		return nil
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupReset, "reset", false, "drop the database first if it exists")
	setupCmd.Flags().StringVar(&setupSeed, "seed", "", "YAML seed file to load after the schema")
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Parse the seed up front so a bad file fails before anything is dropped.
	var seed *persistence.Seed
	if setupSeed != "" {
		loaded, err := persistence.LoadSeedFile(setupSeed)
		if err != nil {
			return err
		}
		seed = loaded
	}

	if setupReset {
		stepColor.Println("Dropping and recreating the database...")
	} else {
		statusColor.Println("Ensuring the database exists...")
	}
	if err := persistence.EnsureDatabase(ctx, cfg.Postgres, setupReset, logger); err != nil {
		errorColor.Printf("Database setup failed: %v\n", err)
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Color("cyan")
	s.Suffix = " Connecting to the database..."
	s.Start()
	pg, err := persistence.ConnectWithRetry(ctx, cfg.Postgres, logger, func(attempt int, err error) {
		s.Suffix = fmt.Sprintf(" Connection attempt %d failed, retrying in %s...", attempt, cfg.Postgres.ConnectRetryDelay)
	})
	s.Stop()
	if err != nil {
		errorColor.Printf("Could not connect: %v\n", err)
		return err
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		return err
	}
	successColor.Println("Schema applied.")

	if seed == nil {
		return nil
	}
	pool := pg.PoolHandle()
	org := service.NewOrgService(service.OrgDependencies{
		DepartmentRepo: repository.NewDepartmentRepository(pool),
		RoleRepo:       repository.NewRoleRepository(pool),
		EmployeeRepo:   repository.NewEmployeeRepository(pool),
		Logger:         logger,
	})
	result, err := persistence.ApplySeed(ctx, seed, org, logger)
	if err != nil {
		errorColor.Printf("Seeding failed: %v\n", err)
		return err
	}
	successColor.Printf("Seeded %s departments, %s roles and %s employees.\n",
		identifierColor.Sprint(result.Departments),
		identifierColor.Sprint(result.Roles),
		identifierColor.Sprint(result.Employees))
	return nil
}
