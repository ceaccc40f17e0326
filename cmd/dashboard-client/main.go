package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// snapshotResponse mirrors the /api/dashboard payload this client reads
type snapshotResponse struct {
	UnitLabel string `json:"unitLabel"`
	Snapshot  struct {
		TakenAt time.Time `json:"takenAt"`
		Primary struct {
			Current struct {
				City        string  `json:"city"`
				Temperature float64 `json:"temperature"`
				Humidity    float64 `json:"humidity"`
				Description string  `json:"description"`
			} `json:"current"`
			Table struct {
				Samples []struct {
					Timestamp   time.Time `json:"timestamp"`
					Temperature float64   `json:"temperature"`
					Humidity    float64   `json:"humidity"`
					WindSpeed   float64   `json:"windSpeed"`
					PrecipProb  float64   `json:"precipProb"`
				} `json:"samples"`
			} `json:"table"`
			ErrMessage string `json:"errMessage"`
		} `json:"primary"`
	} `json:"snapshot"`
}

func main() {
	fmt.Println("Weather Dashboard Client Example")
	fmt.Println("================================")

	// Base URL for the dashboard
	baseURL := "http://localhost:8080"

	// Wait a moment for the dashboard to run its first refresh cycle
	fmt.Println("Waiting for the dashboard to collect initial data...")
	time.Sleep(5 * time.Second)

	resp, err := http.Get(fmt.Sprintf("%s/api/dashboard", baseURL))
	if err != nil {
		fmt.Printf("Error fetching dashboard snapshot: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Dashboard returned status %d: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var snapshot snapshotResponse
	if err := json.Unmarshal(body, &snapshot); err != nil {
		fmt.Printf("Error parsing snapshot: %v\n", err)
		os.Exit(1)
	}

	primary := snapshot.Snapshot.Primary
	if primary.ErrMessage != "" {
		fmt.Printf("Primary city reported an error: %s\n", primary.ErrMessage)
		return
	}

	fmt.Printf("\nCurrent conditions for %s (taken %s):\n",
		primary.Current.City, snapshot.Snapshot.TakenAt.Format(time.RFC1123))
	fmt.Printf("  %.2f %s, %.2f%% humidity, %s\n\n",
		primary.Current.Temperature, snapshot.UnitLabel,
		primary.Current.Humidity, primary.Current.Description)

	fmt.Printf("%-18s %10s %10s %10s %12s\n", "Time", "Temp", "Humidity", "Wind", "Rain Chance")
	for _, sample := range primary.Table.Samples {
		fmt.Printf("%-18s %10.2f %10.2f %10.2f %12.2f\n",
			sample.Timestamp.Format("2006-01-02 15:04"),
			sample.Temperature, sample.Humidity, sample.WindSpeed, sample.PrecipProb)
	}
}
