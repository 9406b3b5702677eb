package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:8090", "placestatsd base URL")
	numWorkers   = flag.Int("workers", 50, "concurrent clients")
	testDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
)

const (
	numPlaces = 300
	numRoutes = 40
)

var categories = []string{"food", "drink", "park", "museum", "bar", "cinema", "zoo", "shop"}

var eventTypes = []string{"place_view", "place_show", "place_show", "place_show", "route_view", "category_view", "route_creation"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	flag.Parse()

	fmt.Println("=== placestatsd load test ===")
	fmt.Printf("Workers: %d | Phase duration: %s | Places: %d | Routes: %d\n\n", *numWorkers, *testDuration, numPlaces, numRoutes)

	fmt.Print("Waiting for server... ")
	if !waitForServer() {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	// registration makes every view count towards the personal statistics too
	r := send(http.MethodPost, "/user/register", `{"name":"loadtest","userType":"user"}`, http.StatusCreated)
	fmt.Printf("Register: error=%v (%s)\n", r.err, fmtDur(r.latency))

	fmt.Println("\n--- Phase 1: Tracking only (POST /events) ---")
	runPhase(func(rng *rand.Rand) result {
		return postEvent(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (70% events, 30% reports) ---")
	runPhase(func(rng *rand.Rand) result {
		if rng.Float64() < 0.70 {
			return postEvent(rng)
		}
		return getReport(rng)
	})

	fmt.Println("\n--- Phase 3: Report-heavy load (10% events, 90% reports) ---")
	runPhase(func(rng *rand.Rand) result {
		if rng.Float64() < 0.10 {
			return postEvent(rng)
		}
		return getReport(rng)
	})
}

func waitForServer() bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func runPhase(workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(*testDuration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, *testDuration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func postEvent(rng *rand.Rand) result {
	eventType := eventTypes[rng.Intn(len(eventTypes))]
	event := map[string]any{"type": eventType}

	switch eventType {
	case "place_view", "place_show":
		id := rng.Intn(numPlaces) + 1
		event["entityId"] = fmt.Sprintf("place-%d", id)
		event["entityName"] = fmt.Sprintf("Place #%d", id)
		tags := make([]string, rng.Intn(3)+1)
		for i := range tags {
			tags[i] = categories[(id+i)%len(categories)]
		}
		event["categories"] = tags
	case "route_view", "route_creation":
		id := rng.Intn(numRoutes) + 1
		event["entityId"] = fmt.Sprintf("route-%d", id)
		event["entityName"] = fmt.Sprintf("Route #%d", id)
	case "category_view":
		event["entityId"] = categories[rng.Intn(len(categories))]
	}

	data, _ := json.Marshal(event)
	r := send(http.MethodPost, "/events", string(data), http.StatusCreated)
	r.endpoint = "POST /events " + eventType
	return r
}

func getReport(rng *rand.Rand) result {
	reports := []string{
		"/places/top?limit=10",
		"/places/categories",
		"/stats/recent?days=7",
		"/stats/total",
		"/stats/day",
		"/history/recent?limit=50",
		"/user",
	}
	path := reports[rng.Intn(len(reports))]
	return send(http.MethodGet, path, "", http.StatusOK)
}

func send(method, path, body string, want int) result {
	endpoint := method + " " + strings.SplitN(path, "?", 2)[0]

	req, err := http.NewRequest(method, *baseURL+path, bytes.NewReader([]byte(body)))
	if err != nil {
		return result{endpoint: endpoint, err: true}
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, lat, resp.StatusCode != want}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
