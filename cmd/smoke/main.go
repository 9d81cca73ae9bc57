package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
)

var (
	baseURL = pflag.String("base-url", "http://localhost:8000", "server address")
	apiKey  = pflag.String("api-key", os.Getenv("API_KEY"), "API key sent as a bearer token")
	diagram = pflag.Bool("diagram", false, "also render a mermaid diagram through Kroki")
)

// Pretty print JSON helper
func prettyPrint(raw []byte) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, *baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	client := &http.Client{Timeout: 90 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

// step runs one request and exits unless the status is 200.
func step(title, method, path string, body interface{}) []byte {
	color.Yellow("\n%s", title)
	resp, raw, err := sendRequest(method, path, body)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		color.Red("Status: %s", resp.Status)
		prettyPrint(raw)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		prettyPrint(raw)
	} else {
		fmt.Printf("%d bytes of %s\n", len(raw), resp.Header.Get("Content-Type"))
	}
	return raw
}

func main() {
	pflag.Parse()
	color.Cyan("Interview assistant smoke test against %s\n", *baseURL)

	step("1. Health", http.MethodGet, "/health", nil)

	raw := step("2. Create session", http.MethodPost, "/api/session", nil)
	var created struct {
		SessionId string `json:"session_id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil || created.SessionId == "" {
		color.Red("No session_id in response")
		os.Exit(1)
	}
	id := created.SessionId

	step("3. Ask a question", http.MethodPost, "/api/question", map[string]interface{}{
		"session_id": id,
		"question":   "How would you design a URL shortener?",
		"style":      map[string]interface{}{"mode": "concise"},
	})

	color.Yellow("\n4. Stream a follow-up")
	streamFollowUp(id)

	step("5. History", http.MethodGet, "/api/history/"+id, nil)

	step("6. Evaluate code", http.MethodPost, "/api/evaluate", map[string]interface{}{
		"session_id": id,
		"problem":    "Reverse a list",
		"code":       "def rev(xs):\n    return xs[::-1]",
	})

	if *diagram {
		step("7. Render mermaid", http.MethodPost, "/api/render_mermaid", map[string]interface{}{
			"code": "graph TD; Client-->API; API-->Store",
		})
	}

	step("8. Delete session", http.MethodDelete, "/api/session/"+id, nil)
	color.Cyan("\nAll steps passed")
}

func streamFollowUp(id string) {
	body, _ := json.Marshal(map[string]interface{}{
		"session_id": id,
		"question":   "How would you scale the redirect path?",
	})
	req, _ := http.NewRequest(http.MethodPost, *baseURL+"/api/question?stream=true", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		color.Red("Status: %s", resp.Status)
		os.Exit(1)
	}

	var data []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case line == "" && data != nil:
			fmt.Print(strings.Join(data, "\n"))
			data = nil
		case line == "event: end":
			color.Green("\n[end of stream]")
			return
		case line == "event: error":
			color.Red("\n[stream error]")
			os.Exit(1)
		}
	}
	color.Red("\nStream closed without an end event")
	os.Exit(1)
}
