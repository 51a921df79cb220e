// ABOUTME: Entry point for the rolo contact manager
// ABOUTME: Routes to MCP server, CRM commands, or the web API based on arguments
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/harperreed/rolo/cli"
	"github.com/harperreed/rolo/config"
	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/web"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/rolo/rolo.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	// Handle version flag
	if *showVersion {
		fmt.Printf("rolo version %s\n", version)
		os.Exit(0)
	}

	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	// Get remaining args after flags
	args := flag.Args()

	// If no command specified, show usage
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	// Route to top-level command
	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		database, err := db.OpenDatabase(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		bus := events.NewBus(logger)
		if err := cli.MCPCommand(database, bus, cfg.ReminderHorizon); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "web":
		database, err := db.OpenDatabase(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		bus := events.NewBus(logger)
		server := web.NewServer(database, bus, logger, cfg.ReminderHorizon)
		if err := server.Start(cfg.WebPort); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "crm":
		// CRM subcommands - initialize database with message
		database, err := db.OpenDatabase(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		log.Printf("Contact database: %s", cfg.DBPath)

		// Handle init-only flag
		if *initOnly {
			log.Println("Database initialized successfully")
			os.Exit(0)
		}

		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}

		crmCommand := commandArgs[0]
		crmArgs := commandArgs[1:]

		if err := runCRMCommand(database, cfg, crmCommand, crmArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runCRMCommand(database *sql.DB, cfg *config.Config, command string, args []string) error {
	switch command {
	// Contact commands
	case "add-contact":
		return cli.AddContactCommand(database, args)
	case "list-contacts":
		return cli.ListContactsCommand(database, args)
	case "update-contact":
		return cli.UpdateContactCommand(database, args)
	case "delete-contact":
		return cli.DeleteContactCommand(database, args)
	case "find-duplicates":
		return cli.FindDuplicatesCommand(database, args)

	// Company commands
	case "add-company":
		return cli.AddCompanyCommand(database, args)
	case "list-companies":
		return cli.ListCompaniesCommand(database, args)
	case "update-company":
		return cli.UpdateCompanyCommand(database, args)
	case "delete-company":
		return cli.DeleteCompanyCommand(database, args)

	// Interaction commands
	case "log-interaction":
		return cli.LogInteractionCommand(database, args)
	case "list-interactions":
		return cli.ListInteractionsCommand(database, args)
	case "delete-interaction":
		return cli.DeleteInteractionCommand(database, args)

	// Reminder commands
	case "add-reminder":
		return cli.AddReminderCommand(database, args)
	case "list-reminders":
		return cli.ListRemindersCommand(database, args)
	case "upcoming-reminders":
		return cli.UpcomingRemindersCommand(database, args, cfg.ReminderHorizon)
	case "delete-reminder":
		return cli.DeleteReminderCommand(database, args)

	// Relationship commands
	case "link-contacts":
		return cli.LinkContactsCommand(database, args)
	case "list-relationships":
		return cli.ListRelationshipsCommand(database, args)
	case "remove-relationship":
		return cli.RemoveRelationshipCommand(database, args)

	// Group commands
	case "create-group":
		return cli.CreateGroupCommand(database, args)
	case "list-groups":
		return cli.ListGroupsCommand(database, args)
	case "delete-group":
		return cli.DeleteGroupCommand(database, args)
	case "add-group-member":
		return cli.AddGroupMemberCommand(database, args)
	case "remove-group-member":
		return cli.RemoveGroupMemberCommand(database, args)
	case "list-group-members":
		return cli.ListGroupMembersCommand(database, args)

	// Transfer commands
	case "export-contacts":
		return cli.ExportContactsCommand(database, args)
	case "import-contacts":
		return cli.ImportContactsCommand(database, args)

	default:
		fmt.Printf("Unknown crm command: %s\n\n", command)
		printUsage()
		os.Exit(1)
		return nil
	}
}

func buildLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func printUsage() {
	fmt.Printf(`rolo v%s - Personal contact manager

USAGE:
  rolo [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/rolo/rolo.db)
  --init                 Initialize database and exit (use with 'crm')

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  web                    Start the JSON REST API server
  crm                    Contact management commands

MCP SERVER:
  rolo mcp               Start MCP server (for Claude Desktop integration)

WEB SERVER:
  rolo web               Start REST API (port from ROLO_WEB_PORT, default 8080)

CRM COMMANDS:
  rolo crm add-contact      Add a new contact
    --first-name <name>       First name (required)
    --last-name <name>        Last name
    --email <email>           Email address
    --phone <phone>           Phone number
    --company <company>       Company name (created if missing)
    --tags <a,b,c>            Comma-separated tags

  rolo crm list-contacts    List or search contacts
    --query <text>            Search names, nickname, email, phone, tags
    --company <company>       Filter by company name
    --limit <n>               Max results (default: 50)

  rolo crm update-contact [flags] <id>   Update a contact
  rolo crm delete-contact <id>           Delete a contact
  rolo crm find-duplicates               Check a candidate for duplicates
    --email <email> --first-name <name> --last-name <name>

  rolo crm add-company      Add a new company
  rolo crm list-companies   List or search companies
  rolo crm update-company [flags] <id>   Update a company
  rolo crm delete-company <id>           Delete a company

  rolo crm log-interaction  Log an interaction with a contact
    --contact <id> --type <call|meeting|email|note|gift|message>
    --summary <text> --when <RFC3339>

  rolo crm list-interactions [--contact <id>] [--limit <n>]
  rolo crm delete-interaction <id>

  rolo crm add-reminder     Add a reminder for a contact
    --contact <id> --type <birthday|anniversary|custom>
    --date <YYYY-MM-DD> --message <text>

  rolo crm list-reminders [--contact <id>]
  rolo crm upcoming-reminders [--days <n>]
  rolo crm delete-reminder <id>

  rolo crm link-contacts    Relate two contacts
    --contact <id> --related <id> --type <spouse|friend|...>

  rolo crm list-relationships --contact <id>
  rolo crm remove-relationship <id>

  rolo crm create-group --name <name> [--description <text>]
  rolo crm list-groups [--contact <id>]
  rolo crm delete-group <id>
  rolo crm add-group-member --group <id> --contact <id>
  rolo crm remove-group-member --group <id> --contact <id>
  rolo crm list-group-members --group <id>

  rolo crm export-contacts [--output <file>]
  rolo crm import-contacts --input <file>

EXAMPLES:
  # Start MCP server for Claude Desktop
  rolo mcp

  # Add a contact
  rolo crm add-contact --first-name "John" --last-name "Smith" --email "john@acme.com" --company "Acme Corp"

  # Find contacts even with a typo
  rolo crm list-contacts --query "Jhon"

  # Import a CSV exported from another tool
  rolo crm import-contacts --input contacts.csv

`, version)
}
