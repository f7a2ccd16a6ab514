// Command quill serves a file-based blog: Markdown documents with
// front matter under a content directory, rendered over HTTP.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/tailtq/quill"
	"github.com/tailtq/quill/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// Local development keeps secrets in .env; absence is fine.
	_ = godotenv.Load()

	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			log.Fatal(err)
		}
	case "check":
		dir := quill.EnvOr("CONTENT_DIR", "content")
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		if err := runCheck(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "assets":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: quill assets <dir>")
			os.Exit(1)
		}
		n, err := quill.ProcessAssets(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d asset variant(s) written\n", n)
	case "version":
		fmt.Printf("quill %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg := quill.SiteConfig{
		Name:          quill.EnvOr("SITE_NAME", ""),
		URL:           strings.TrimSuffix(quill.EnvOr("SITE_URL", ""), "/"),
		Description:   quill.EnvOr("SITE_DESCRIPTION", ""),
		Author:        quill.EnvOr("SITE_AUTHOR", ""),
		Addr:          quill.EnvOr("ADDR", ""),
		DatabasePath:  quill.EnvOr("DATABASE_PATH", ""),
		ContentDir:    quill.EnvOr("CONTENT_DIR", ""),
		AssetPrefix:   quill.EnvOr("ASSET_PREFIX", ""),
		AdminPassword: mustEnv("ADMIN_PASSWORD"),
		SessionSecret: mustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}

	app := quill.New(cfg)
	defer app.Close()
	return app.Start()
}

// runCheck validates a content tree without serving it, so a broken
// document is caught before deploy. The diagnostic names the file.
func runCheck(dir string) error {
	coll, err := content.Load(dir)
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d post(s), %d page(s)\n", len(coll.Posts()), len(coll.Pages()))
	return nil
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("quill: required environment variable %s is not set", key)
	}
	return v
}

func printUsage() {
	fmt.Println(`quill - a file-based blog engine built with Go, Echo, and templ

Usage:
  quill <command> [arguments]

Commands:
  serve          Start the HTTP server (default)
  check [dir]    Validate the content tree and exit
  assets <dir>   Generate web-sized image variants for a media directory
  version        Print the quill version
  help           Show this help message`)
}
