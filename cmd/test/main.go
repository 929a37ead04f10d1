package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURL   string
	idea      string
	channel   string
	audiences []string
)

var rootCmd = &cobra.Command{
	Use:   "strategy-smoke",
	Short: "Smoke tests for the Fondue Chalet Strategy Agent",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		printHeader("Fondue Chalet Strategy Agent - Test Suite")
		fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, baseURL, colorReset)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return NewTestClient(baseURL).runAllTests()
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health endpoint",
	RunE:  runSingle(func(tc *TestClient) bool { return tc.testHealthCheck() }),
}

var agentCardCmd = &cobra.Command{
	Use:   "agent-card",
	Short: "Validate the agent card",
	RunE:  runSingle(func(tc *TestClient) bool { return tc.testAgentCard() }),
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Fetch channels, audiences and brand guidelines",
	RunE:  runSingle(func(tc *TestClient) bool { return tc.testCatalog() }),
}

var walkthroughCmd = &cobra.Command{
	Use:   "walkthrough",
	Short: "Select a channel, toggle two audiences and mix them",
	RunE:  runSingle(func(tc *TestClient) bool { return tc.testWalkthrough() }),
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a campaign idea through message/send",
	RunE: func(cmd *cobra.Command, args []string) error {
		if idea == "" {
			return fmt.Errorf("idea is required for evaluate, use --idea")
		}
		if len(audiences) == 0 || len(audiences) > 2 {
			return fmt.Errorf("pass one or two --audience values, got %d", len(audiences))
		}
		return runSingle(func(tc *TestClient) bool {
			return tc.testEvaluate(channel, audiences, idea)
		})(cmd, args)
	},
}

func runSingle(fn func(tc *TestClient) bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !fn(NewTestClient(baseURL)) {
			return fmt.Errorf("%s failed", cmd.Name())
		}
		return nil
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the agent")

	evaluateCmd.Flags().StringVar(&idea, "idea", "", "Campaign idea to evaluate")
	evaluateCmd.Flags().StringVar(&channel, "channel", "Photo", "Channel: Photo, Video, Post, Ad, EDM, Influencer")
	evaluateCmd.Flags().StringSliceVar(&audiences, "audience", []string{"foodies"}, "Audience id (repeat for a mixed profile)")

	rootCmd.AddCommand(healthCmd, agentCardCmd, catalogCmd, walkthroughCmd, evaluateCmd)
	rootCmd.SilenceUsage = true
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}
