package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/uaclassify/uaclassify/internal/clslog"
	"github.com/uaclassify/uaclassify/ruledef"
	"github.com/uaclassify/uaclassify/uaparser"
)

func newClassifyCmd() *cobra.Command {
	var rulesPath string
	var inPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify user agent strings, one per input line",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rulesPath == "" {
				return errors.New("rules path is required")
			}
			defs, err := ruledef.Load(rulesPath)
			if err != nil {
				return err
			}
			if err := defs.Validate(); err != nil {
				return err
			}
			rules, err := defs.Compile()
			if err != nil {
				return err
			}
			parser := uaparser.New(rules)

			var in io.Reader = cmd.InOrStdin()
			if inPath != "" {
				file, err := os.Open(inPath)
				if err != nil {
					return err
				}
				defer func() { _ = file.Close() }()
				in = file
			}

			logger := clslog.NewLogger(cmd.OutOrStdout())
			if outPath != "" {
				fileLogger, closer, err := clslog.Open(outPath)
				if err != nil {
					return err
				}
				defer func() { _ = closer() }()
				logger = fileLogger
			}

			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if err := logger.Write(classify(parser, line)); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "Path to rule definition file")
	cmd.Flags().StringVar(&inPath, "in", "", "Input file with one UA string per line (default stdin)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output JSONL file (default stdout)")

	return cmd
}

func classify(parser *uaparser.Parser, input string) clslog.Record {
	start := time.Now()

	agent, agentOK := parser.ParseAgent(input)
	osRes, osOK := parser.ParseOS(input)
	device, deviceOK := parser.ParseDevice(input)

	rec := clslog.Record{
		Timestamp:  time.Now().UTC(),
		Input:      input,
		Agent:      clslog.AgentInfo{Matched: agentOK},
		OS:         clslog.OSInfo{Matched: osOK},
		Device:     clslog.DeviceInfo{Matched: deviceOK},
		DurationUS: time.Since(start).Microseconds(),
	}

	if agentOK {
		rec.Agent.Family = agent.Family
		rec.Agent.Version = agent.Version()
	}
	if osOK {
		rec.OS.Family = osRes.Family
		rec.OS.Version = osRes.Version()
	}
	if deviceOK {
		rec.Device.Family = device.Family
		rec.Device.Brand = fieldText(device.Brand)
		rec.Device.Model = fieldText(device.Model)
	}

	return rec
}

func fieldText(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
