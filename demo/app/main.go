package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/uaclassify/uaclassify/internal/observability"
	"github.com/uaclassify/uaclassify/ruledef"
	"github.com/uaclassify/uaclassify/uaparser"
)

type identity struct {
	Agent  agentInfo  `json:"agent"`
	OS     osInfo     `json:"os"`
	Device deviceInfo `json:"device"`
}

type agentInfo struct {
	Family  string `json:"family"`
	Version string `json:"version,omitempty"`
}

type osInfo struct {
	Family  string `json:"family"`
	Version string `json:"version,omitempty"`
}

type deviceInfo struct {
	Family string `json:"family"`
	Brand  string `json:"brand,omitempty"`
	Model  string `json:"model,omitempty"`
}

func main() {
	rulesPath := flag.String("rules", "rules.yaml", "path to rule definition file")
	listen := flag.String("listen", ":8080", "listen address")
	flag.Parse()

	parser, err := uaparser.InitShared(func() (*uaparser.Parser, error) {
		defs, err := ruledef.Load(*rulesPath)
		if err != nil {
			return nil, err
		}
		if err := defs.Validate(); err != nil {
			return nil, err
		}
		rules, err := defs.Compile()
		if err != nil {
			return nil, err
		}
		return uaparser.New(rules), nil
	})
	if err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	parser.SetObserver(metrics)

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		ua := r.UserAgent()

		var out identity
		if agent, ok := parser.ParseAgent(ua); ok {
			out.Agent = agentInfo{Family: agent.Family, Version: agent.Version()}
		}
		if osRes, ok := parser.ParseOS(ua); ok {
			out.OS = osInfo{Family: osRes.Family, Version: osRes.Version()}
		}
		device := parser.ParseDeviceLenient(ua)
		out.Device = deviceInfo{Family: device.Family}
		if device.Brand != nil {
			out.Device.Brand = *device.Brand
		}
		if device.Model != nil {
			out.Device.Model = *device.Model
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})

	mux.Handle("/metrics", metrics.Handler(reg))

	srv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("demo app listening on %s", *listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
