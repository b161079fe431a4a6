package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/vidrelay/internal/domain"
)

var (
	serverURL    string
	serverConfig string
	apiKey       string
	noAutoStart  bool
	rootCmd      = &cobra.Command{
		Use:   "vidrelay",
		Short: "VidRelay CLI - look up and download YouTube, TikTok and Facebook videos",
		Long:  `A command-line client for a VidRelay server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("VIDRELAY_SERVER", "http://localhost:3000"), "Server URL")
	rootCmd.PersistentFlags().StringVar(&serverConfig, "server-config", "", "Config file passed to an auto-started server")
	rootCmd.PersistentFlags().StringVar(&apiKey, "key", os.Getenv("VIDRELAY_API_KEY"), "API key for download and journal endpoints")
	rootCmd.PersistentFlags().BoolVar(&noAutoStart, "no-auto-start", false, "Don't auto-start server if not running")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metadataCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(lookupsCmd)
	rootCmd.AddCommand(statsCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ensureServer checks if server is running and starts it if needed (unless --no-auto-start)
func ensureServer() {
	if noAutoStart {
		return
	}
	if err := ensureServerRunning(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show server health",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		info, err := NewClient(serverURL).Health()
		if err != nil {
			fail(err)
		}
		fmt.Println(info.Message)
		fmt.Printf("  Environment: %s\n", info.Environment)
		fmt.Printf("  Platforms:   %s\n", strings.Join(info.Platforms, ", "))
		fmt.Printf("  Time:        %s\n", info.Timestamp)
	},
}

var metadataCmd = &cobra.Command{
	Use:   "metadata [url]",
	Short: "Show title, uploader and download options for a video",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		jsonOutput, _ := cmd.Flags().GetBool("json")

		var metadata domain.VideoMetadata
		if err := NewClient(serverURL).getData("/api/metadata", url.Values{"url": {args[0]}}, &metadata); err != nil {
			fail(err)
		}

		if jsonOutput {
			pretty, _ := json.MarshalIndent(metadata, "", "  ")
			fmt.Println(string(pretty))
			return
		}
		printMetadata(&metadata)
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download [url]",
	Short: "Download a video (TikTok is saved to disk, other platforms print the loader URL)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		result, err := NewClient(serverURL).Download(args[0], format, apiKey, output)
		if err != nil {
			fail(err)
		}

		if result.RedirectURL != "" {
			fmt.Println("Open this link to download:")
			fmt.Println(result.RedirectURL)
			return
		}
		fmt.Printf("Saved %s (%d bytes)\n", result.Path, result.Bytes)
	},
}

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "List recent lookups from the server journal",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()
		limit, _ := cmd.Flags().GetInt("limit")

		query := url.Values{"limit": {strconv.Itoa(limit)}}
		if apiKey != "" {
			query.Set("key", apiKey)
		}

		var lookups []domain.Lookup
		if err := NewClient(serverURL).getData("/api/lookups", query, &lookups); err != nil {
			fail(err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tENDPOINT\tPLATFORM\tRESULT\tSTATUS\tLATENCY\tURL")
		for _, l := range lookups {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dms\t%s\n",
				l.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				l.Endpoint,
				l.Platform,
				lookupResult(&l),
				l.Status,
				l.LatencyMS,
				truncate(l.URL, 50))
		}
		w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lookup statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ensureServer()

		query := url.Values{}
		if apiKey != "" {
			query.Set("key", apiKey)
		}

		var stats domain.LookupStats
		if err := NewClient(serverURL).getData("/api/lookups/stats", query, &stats); err != nil {
			fail(err)
		}

		fmt.Println("Lookup Statistics:")
		fmt.Printf("  Total:     %d\n", stats.Total)
		fmt.Printf("  Succeeded: %d\n", stats.Succeeded)
		fmt.Printf("  Failed:    %d\n", stats.Failed)
		for _, p := range domain.SupportedPlatforms() {
			fmt.Printf("  %-10s %d\n", string(p)+":", stats.ByPlatform[p])
		}
	},
}

func init() {
	metadataCmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	downloadCmd.Flags().StringP("format", "f", "", "Option id (e.g. no-watermark, watermark, mp3)")
	downloadCmd.Flags().StringP("output", "o", "", "Output file or directory")
	lookupsCmd.Flags().IntP("limit", "n", 20, "Number of lookups to show")
}

func printMetadata(m *domain.VideoMetadata) {
	fmt.Printf("%s\n", m.Title)
	fmt.Printf("  Platform: %s\n", m.Platform)
	fmt.Printf("  Uploader: %s\n", m.Uploader)
	fmt.Printf("  Duration: %s\n", m.Duration)
	if m.UploadDate != "" {
		fmt.Printf("  Uploaded: %s\n", m.UploadDate)
	}
	if m.ViewCount > 0 {
		fmt.Printf("  Views:    %d\n", m.ViewCount)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nFORMAT\tLABEL\tEXT\tQUALITY")
	for _, o := range m.Options {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, o.Label, o.Ext, o.Quality)
	}
	w.Flush()
}

func lookupResult(l *domain.Lookup) string {
	if l.Succeeded() {
		return "ok"
	}
	return "failed"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
