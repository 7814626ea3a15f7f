package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// scenario defines one API call shape exercised by the load test
type scenario struct {
	name string
	path string
	body func() any
}

// callResult records the outcome of a single request
type callResult struct {
	scenario string
	status   int
	elapsed  time.Duration
	err      error
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	maxWaitMs := flag.Int("wait", 50, "Upper bound for the inline delay scenario in milliseconds")
	tpsTarget := flag.Float64("tps", 0, "Throughput threshold to verify (0 disables the check)")
	flag.Parse()

	// Request scenarios across the API surface. The inline delay scenario
	// keeps connections open, which is the interesting load case.
	scenarios := []scenario{
		{"Parse Compound", "/api/v1/duration/parse", func() any {
			return map[string]any{"input": "1h 30m"}
		}},
		{"Parse Decimal", "/api/v1/duration/parse", func() any {
			return map[string]any{"input": fmt.Sprintf("%.1fs", 0.5+rand.Float64()*9)}
		}},
		{"Format Duration", "/api/v1/duration/format", func() any {
			return map[string]any{"milliseconds": float64(rand.Intn(90000000))}
		}},
		{"Format Date", "/api/v1/date/format", func() any {
			return map[string]any{
				"unixMillis": time.Now().UnixMilli(),
				"pattern":    "yyyy-MM-dd HH:mm:ss.SSS",
			}
		}},
		{"Parse Date", "/api/v1/date/parse", func() any {
			return map[string]any{"input": "2026-01-15 14:05:09"}
		}},
		{"Inline Delay", "/api/v1/delay", func() any {
			return map[string]any{"milliseconds": float64(1 + rand.Intn(*maxWaitMs))}
		}},
	}

	fmt.Printf("Load testing API at %s\n", *baseURL)
	fmt.Printf("Request scenarios: %d different shapes\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	jobs := make(chan struct{}, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- struct{}{}
	}
	close(jobs)

	results := make(chan callResult, *totalRequests)

	var completed atomic.Int64
	stopProgress := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				done := completed.Load()
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					done, *totalRequests, float64(done)/float64(*totalRequests)*100)
			case <-stopProgress:
				return
			}
		}
	}()

	fmt.Println("Test running...")
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(*baseURL, time.Duration(*delayMs)*time.Millisecond, scenarios, jobs, results, &completed)
		}()
	}

	wg.Wait()
	wall := time.Since(start)
	close(stopProgress)
	close(results)

	all := make([]callResult, 0, *totalRequests)
	for result := range results {
		all = append(all, result)
	}

	summarize(all, wall, *tpsTarget)
}

// runWorker drains the job channel, pacing itself by the configured delay
func runWorker(baseURL string, pause time.Duration, scenarios []scenario,
	jobs <-chan struct{}, results chan<- callResult, completed *atomic.Int64) {

	client := &http.Client{Timeout: 30 * time.Second}

	for range jobs {
		if pause > 0 {
			time.Sleep(pause)
		}

		results <- call(client, baseURL, scenarios[rand.Intn(len(scenarios))])
		completed.Add(1)
	}
}

// call runs one request and captures its latency
func call(client *http.Client, baseURL string, s scenario) callResult {
	payload, err := json.Marshal(s.body())
	if err != nil {
		return callResult{scenario: s.name, err: err}
	}

	start := time.Now()
	resp, err := client.Post(baseURL+s.path, "application/json", bytes.NewReader(payload))
	elapsed := time.Since(start)
	if err != nil {
		return callResult{scenario: s.name, elapsed: elapsed, err: err}
	}
	defer resp.Body.Close()

	result := callResult{scenario: s.name, status: resp.StatusCode, elapsed: elapsed}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.err = fmt.Errorf("HTTP status code %d", resp.StatusCode)
	}
	return result
}

func summarize(results []callResult, wall time.Duration, tpsTarget float64) {
	var succeeded, failed int
	var totalLatency, slowest time.Duration
	var fastest time.Duration
	latencies := make([]time.Duration, 0, len(results))
	perScenario := make(map[string]int)
	perError := make(map[string]int)

	for _, r := range results {
		perScenario[r.scenario]++
		latencies = append(latencies, r.elapsed)
		totalLatency += r.elapsed
		if fastest == 0 || r.elapsed < fastest {
			fastest = r.elapsed
		}
		if r.elapsed > slowest {
			slowest = r.elapsed
		}

		if r.err != nil {
			failed++
			perError[r.err.Error()]++
			continue
		}
		succeeded++
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	pct := func(p int) time.Duration {
		if len(latencies) == 0 {
			return 0
		}
		return latencies[len(latencies)*p/100]
	}

	n := len(results)
	rawTps := float64(succeeded) / wall.Seconds()
	theoreticalTps := float64(n) / wall.Seconds()

	var avg time.Duration
	if n > 0 {
		avg = totalLatency / time.Duration(n)
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", n)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", succeeded, percent(succeeded, n))
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", failed, percent(failed, n))
	fmt.Printf("Total Test Time:     %.2f seconds\n", wall.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	fmt.Printf("Minimum Response:    %v\n", fastest)
	fmt.Printf("Maximum Response:    %v\n", slowest)
	fmt.Printf("P50 Response:        %v\n", pct(50))
	fmt.Printf("P90 Response:        %v\n", pct(90))
	fmt.Printf("P95 Response:        %v\n", pct(95))
	fmt.Printf("P99 Response:        %v\n", pct(99))

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for name, count := range perScenario {
		fmt.Printf("%-15s: %d requests (%.1f%%)\n", name, count, percent(count, n))
	}

	if failed > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for msg, count := range perError {
			fmt.Printf("%-40s: %d (%.1f%%)\n", msg, count, percent(count, n))
		}
	}

	if tpsTarget > 0 {
		fmt.Println("\n================= CONCLUSION =================")
		if theoreticalTps >= tpsTarget {
			fmt.Printf("✅ SYSTEM EXCEEDS the %.0f TPS threshold (%.2f TPS)\n", tpsTarget, theoreticalTps)
			if rawTps < tpsTarget {
				fmt.Println("⚠️ But rate limiting or other issues are preventing full performance")
			}
		} else {
			fmt.Printf("❌ SYSTEM DOES NOT MEET the %.0f TPS threshold (%.2f TPS)\n", tpsTarget, theoreticalTps)
		}
		fmt.Println("================================================")
	}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
