package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aussiebroadwan/profilefeed/internal/profiles/app"
	"github.com/aussiebroadwan/profilefeed/internal/profiles/service"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if len(os.Args) > 1 && os.Args[1] == "createsuperuser" {
		if err := createSuperuser(cfg, os.Args[2:]); err != nil {
			log.Fatalf("createsuperuser: %v", err)
		}
		return
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

// createSuperuser handles `profiles createsuperuser -email E -name N [-password P]`.
// Without -password the password is read from the first line of stdin.
func createSuperuser(cfg app.Config, args []string) error {
	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	email := fs.String("email", "", "superuser email (required)")
	name := fs.String("name", "", "superuser display name (required)")
	password := fs.String("password", "", "superuser password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read password from stdin: %w", err)
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	u, err := application.CreateSuperuser(ctx, *email, *name, *password)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
			}
		}
		return err
	}

	fmt.Fprintf(os.Stdout, "superuser %s created (id %s)\n", u.Email, u.ID)
	return nil
}
