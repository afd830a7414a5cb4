// init.go implements the "swipe init" command.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berth-dev/swipe/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize swipe in the current directory",
	Long: `Write .swipe/config.yaml with default labels, gesture thresholds and
logging, and make sure local runtime files are gitignored. Endpoint
credentials are read from the environment and never written here.`,
	RunE: runInit,
}

var forceFlag bool

func init() {
	initCmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config without asking")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	return initProject(dir, cmd.InOrStdin(), cmd.OutOrStdout(), forceFlag)
}

func initProject(dir string, in io.Reader, out io.Writer, force bool) error {
	cfgPath := filepath.Join(config.Dir(dir), "config.yaml")
	if _, statErr := os.Stat(cfgPath); statErr == nil && !force {
		fmt.Fprintln(out, "Warning: .swipe/config.yaml already exists.")
		fmt.Fprint(out, "Overwrite? [y/N]: ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.Title = filepath.Base(dir)
	if err := config.WriteConfig(dir, cfg); err != nil {
		return err
	}

	if err := ensureGitignore(dir); err != nil {
		fmt.Fprintf(out, "Warning: failed to set up .gitignore: %v\n", err)
	}

	fmt.Fprintln(out, "Swipe initialized")
	fmt.Fprintln(out, "Configuration written to .swipe/config.yaml")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Set SWIPE_ENDPOINT_URL, or the Google Sheets variables, in the environment")
	fmt.Fprintln(out, "  2. Run: swipe")
	return nil
}

// ensureGitignore creates or appends to .gitignore so local runtime files
// and secrets are never committed. Entries already present are skipped.
func ensureGitignore(dir string) error {
	gitignorePath := filepath.Join(dir, ".gitignore")

	requiredEntries := []string{
		// Secrets
		".env",
		".env.*",
		// Swipe runtime (config.yaml IS committed)
		".swipe/log.jsonl",
		".swipe/swipe.log",
		".swipe/collect.db",
	}

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range requiredEntries {
		if !hasLine(existing, entry) {
			missing = append(missing, entry)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var toAppend strings.Builder
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		toAppend.WriteString("\n")
	}
	if existing != "" {
		toAppend.WriteString("\n# Added by swipe init\n")
	}
	for _, entry := range missing {
		toAppend.WriteString(entry + "\n")
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(toAppend.String()); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

func hasLine(content, entry string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == entry {
			return true
		}
	}
	return false
}
