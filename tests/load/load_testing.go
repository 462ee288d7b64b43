package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"

	"roster-service/internal/auth"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 5
	duration   = 3 * time.Minute
)

type QuotaPayload struct {
	AreaID string `json:"area_id"`
	RoleID string `json:"role_id"`
	Count  int    `json:"count"`
}

type CreateScheduleRequest struct {
	Name      string    `json:"name"`
	Local     string    `json:"local"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	ShiftSlot string    `json:"shift_slot"`
}

type GenerateRequest struct {
	Quotas []QuotaPayload `json:"quotas"`
}

type RegenerateRequest struct {
	Quotas  []QuotaPayload `json:"quotas"`
	Confirm bool           `json:"confirm"`
}

var (
	schedules   []string
	accessToken string
	httpc       = &http.Client{Timeout: 10 * time.Second}
)

func jsonHeader() map[string][]string {
	return map[string][]string{
		"Content-Type":  {"application/json"},
		"Authorization": {"Bearer " + accessToken},
	}
}

func postJSON(url string, body any) (int, []byte, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp.StatusCode, out.Bytes(), nil
}

// Seed
func seedData() error {
	log.Println("Seeding: creating draft schedules...")

	base := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	quotas := []QuotaPayload{
		{AreaID: "area-worship", RoleID: "role-vocals", Count: 3},
		{AreaID: "area-worship", RoleID: "role-keys", Count: 1},
	}

	for i := 1; i <= 30; i++ {
		req := CreateScheduleRequest{
			Name:      fmt.Sprintf("load-schedule-%02d", i),
			Local:     "main hall",
			StartsAt:  base.Add(time.Duration(i) * 24 * time.Hour),
			EndsAt:    base.Add(time.Duration(i)*24*time.Hour + 3*time.Hour),
			ShiftSlot: "morning",
		}

		status, body, err := postJSON(targetHost+"/schedules", req)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN POST /schedules returned %d\n", status)
			continue
		}

		var resp struct {
			Schedule struct {
				ScheduleID string `json:"schedule_id"`
			} `json:"schedule"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return err
		}
		schedules = append(schedules, resp.Schedule.ScheduleID)

		status, _, err = postJSON(targetHost+"/schedules/"+resp.Schedule.ScheduleID+"/generate", GenerateRequest{Quotas: quotas})
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN POST generate returned %d\n", status)
		}

		time.Sleep(20 * time.Millisecond)
	}

	log.Printf("Seed completed: schedules=%d\n", len(schedules))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	quotas := []QuotaPayload{
		{AreaID: "area-worship", RoleID: "role-vocals", Count: 3},
		{AreaID: "area-worship", RoleID: "role-keys", Count: 1},
	}

	return func(t *vegeta.Target) error {
		r := rand.Float64()

		// 70% GET снимка расписания (основной паттерн опроса клиентами)
		if r < 0.70 {
			sched := schedules[rand.Intn(len(schedules))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/schedules/%s", targetHost, sched)
			t.Body = nil
			t.Header = jsonHeader()
			return nil
		}

		// 25% GET списка расписаний
		if r < 0.95 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/schedules"
			t.Body = nil
			t.Header = jsonHeader()
			return nil
		}

		// 5% разрушительная регенерация, проверяет сериализацию мутаций
		sched := schedules[rand.Intn(len(schedules))]
		body, _ := json.Marshal(RegenerateRequest{Quotas: quotas, Confirm: true})
		t.Method = http.MethodPost
		t.URL = fmt.Sprintf("%s/schedules/%s/regenerate", targetHost, sched)
		t.Body = body
		t.Header = jsonHeader()
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	manager := auth.NewJWTManager(secret, 4*time.Hour)
	token, err := manager.GenerateAccessToken("load-tester", []string{auth.CapabilityManage})
	if err != nil {
		log.Fatalf("Token generation failed: %v", err)
	}
	accessToken = token

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}
