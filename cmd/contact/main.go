package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"quantumworks-backend/internal/domain"
	"quantumworks-backend/internal/tui"
	"quantumworks-backend/pkg/contactform"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	siteURL string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message through the QuantumWorks contact form",
	Long: `Opens the contact form in the terminal and submits it to the site's
form endpoint, exactly as the web page does.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runContact,
}

func init() {
	rootCmd.Flags().StringVar(&siteURL, "url", "https://quantumworks.services", "Base URL of the site")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")
}

func runContact(cmd *cobra.Command, args []string) error {
	client := contactform.NewClient(siteURL, &http.Client{Timeout: timeout})
	return tui.Run(client, domain.ProjectTypes, tea.WithAltScreen())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
