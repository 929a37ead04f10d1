package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type strategyResult struct {
	Session struct {
		SessionID string   `json:"sessionId"`
		Audiences []string `json:"audiences"`
		CanMix    bool     `json:"canMix"`
		Active    struct {
			Kind string `json:"kind"`
		} `json:"active"`
	} `json:"session"`
	Outcome  string `json:"outcome"`
	Error    string `json:"error"`
	Markdown string `json:"markdown"`
}

func (tc *TestClient) runAllTests() error {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Catalog", tc.testCatalog},
		{"Walkthrough", tc.testWalkthrough},
		{"Idea Evaluation", func() bool {
			return tc.testEvaluate("Photo", []string{"foodies"}, "A snowy Alps-inspired chalet dinner with wine pairing at Fed Square")
		}},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d tests failed", failed, passed+failed)
	}
	return nil
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	body, ok := tc.get("/health")
	if !ok {
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	body, ok := tc.get("/.well-known/agent.json")
	if !ok {
		return false
	}

	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	// Check required fields
	requiredFields := []string{"name", "description", "version", "capabilities", "endpoints"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testCatalog() bool {
	printTestHeader("Testing Catalog Endpoint")

	body, ok := tc.get("/catalog")
	if !ok {
		return false
	}

	var catalog struct {
		Channels  []map[string]interface{} `json:"channels"`
		Audiences []map[string]interface{} `json:"audiences"`
	}
	if err := json.Unmarshal(body, &catalog); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(catalog.Channels) != 6 || len(catalog.Audiences) != 6 {
		printError(fmt.Sprintf("Expected 6 channels and 6 audiences, got %d and %d", len(catalog.Channels), len(catalog.Audiences)))
		return false
	}

	printSuccess("Catalog lists 6 channels and 6 audiences")
	return true
}

func (tc *TestClient) testWalkthrough() bool {
	printTestHeader("Testing Selection Walkthrough")

	sessionID, ok := tc.setup("Photo", []string{"foodies", "young-friends"})
	if !ok {
		return false
	}

	res, ok := tc.strategy("profile/mix", map[string]interface{}{"sessionId": sessionID})
	if !ok {
		return false
	}
	if res.Outcome != "applied" || res.Session.Active.Kind != "mixed" {
		printError(fmt.Sprintf("Expected applied mixed profile, got outcome '%s' kind '%s' %s", res.Outcome, res.Session.Active.Kind, res.Error))
		return false
	}

	printSuccess("Mixed profile generated")
	printCard(res.Markdown)
	return true
}

func (tc *TestClient) testEvaluate(channel string, audiences []string, idea string) bool {
	printTestHeader("Testing Idea Evaluation")
	fmt.Printf("%sIdea:%s %s\n\n", colorCyan, colorReset, idea)

	sessionID, ok := tc.setup(channel, audiences)
	if !ok {
		return false
	}
	if len(audiences) == 2 {
		if res, ok := tc.strategy("profile/mix", map[string]interface{}{"sessionId": sessionID}); !ok || res.Outcome != "applied" {
			printError("Mixing the two audiences failed")
			return false
		}
	}

	params := map[string]interface{}{
		"message": map[string]interface{}{
			"kind": "message",
			"role": "user",
			"parts": []map[string]interface{}{
				{
					"kind": "text",
					"text": idea,
				},
			},
			"metadata": map[string]interface{}{"sessionId": sessionID},
		},
		"configuration": map[string]interface{}{
			"blocking":            true,
			"acceptedOutputModes": []string{"text", "data"},
		},
	}

	resp, ok := tc.rpc("message/send", params)
	if !ok {
		return false
	}

	var result map[string]interface{}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		printError("Invalid result format")
		return false
	}

	// Check task status
	status, ok := result["status"].(map[string]interface{})
	if !ok {
		printError("Invalid status format")
		return false
	}

	state, _ := status["state"].(string)
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("Idea evaluation completed successfully")

	if msg, ok := status["message"].(map[string]interface{}); ok {
		if parts, ok := msg["parts"].([]interface{}); ok {
			for _, part := range parts {
				if p, ok := part.(map[string]interface{}); ok {
					if text, ok := p["text"].(string); ok {
						printCard(text)
					}
				}
			}
		}
	}

	if artifacts, ok := result["artifacts"].([]interface{}); ok && len(artifacts) > 0 {
		fmt.Printf("\n%sArtifacts:%s %d\n", colorPurple, colorReset, len(artifacts))
	}
	return true
}

// setup creates a session and applies the given channel and audiences.
func (tc *TestClient) setup(channel string, audiences []string) (string, bool) {
	res, ok := tc.strategy("session/create", nil)
	if !ok {
		return "", false
	}
	sessionID := res.Session.SessionID
	fmt.Printf("Session: %s\n", sessionID)

	if _, ok := tc.strategy("channel/select", map[string]interface{}{"sessionId": sessionID, "channel": channel}); !ok {
		return "", false
	}
	for _, audience := range audiences {
		if _, ok := tc.strategy("audience/toggle", map[string]interface{}{"sessionId": sessionID, "audience": audience}); !ok {
			return "", false
		}
	}
	return sessionID, true
}

func (tc *TestClient) strategy(method string, params interface{}) (strategyResult, bool) {
	var res strategyResult
	resp, ok := tc.rpc(method, params)
	if !ok {
		return res, false
	}
	if err := json.Unmarshal(resp.Result, &res); err != nil {
		printError(fmt.Sprintf("Invalid %s result: %v", method, err))
		return res, false
	}
	return res, true
}

func (tc *TestClient) rpc(method string, params interface{}) (rpcResponse, bool) {
	var response rpcResponse

	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().UnixNano()),
		"method":  method,
	}
	if params != nil {
		request["params"] = params
	}

	jsonData, _ := json.Marshal(request)
	url := tc.baseURL + "/a2a/strategy"
	fmt.Printf("POST %s %s%s%s\n", url, colorYellow, method, colorReset)

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return response, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return response, false
	}

	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return response, false
	}
	if response.Error != nil {
		printError(fmt.Sprintf("%s returned error %d: %s", method, response.Error.Code, response.Error.Message))
		return response, false
	}
	return response, true
}

func (tc *TestClient) get(path string) ([]byte, bool) {
	url := tc.baseURL + path
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return nil, false
	}
	return body, true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printCard(text string) {
	fmt.Printf("\n%sCard:%s\n", colorGreen, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(text)
	fmt.Println(strings.Repeat("=", 80))
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
