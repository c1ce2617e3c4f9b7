package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/viant/schedsim"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/pipeline"
)

const rule = "========================================"

var errInvalidNumber = errors.New("invalid number")

// menu is the interactive front end. Input is read as whitespace separated
// tokens so several answers may share a line.
type menu struct {
	runtime *schedsim.Runtime
	config  *schedsim.Config
	scanner *bufio.Scanner
	out     io.Writer
}

func newMenu(runtime *schedsim.Runtime, config *schedsim.Config, input io.Reader, output io.Writer) *menu {
	scanner := bufio.NewScanner(input)
	scanner.Split(bufio.ScanWords)
	return &menu{runtime: runtime, config: config, scanner: scanner, out: output}
}

func (m *menu) banner(title string) {
	fmt.Fprintf(m.out, "\n%s\n  %s\n%s\n", rule, title, rule)
}

// readInt prompts and reads one integer; io.EOF is returned once input is
// exhausted.
func (m *menu) readInt(prompt string) (int, error) {
	fmt.Fprint(m.out, prompt)
	if !m.scanner.Scan() {
		if err := m.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	value, err := strconv.Atoi(m.scanner.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, m.scanner.Text())
	}
	return value, nil
}

func (m *menu) run(ctx context.Context) error {
	m.banner("COMPREHENSIVE CPU SCHEDULING SYSTEM")
	fmt.Fprintf(m.out, "\nResource Configuration:\nNumber of Resource Types: %d\nTotal Resources: %v\n", m.config.Resources.Types, m.config.Resources.Total)
	for {
		m.banner("CPU SCHEDULING SIMULATOR - MAIN MENU")
		fmt.Fprintln(m.out, "1. Start Simulation (Producer-Consumer)")
		fmt.Fprintln(m.out, "2. Add Process Manually")
		fmt.Fprintln(m.out, "3. Display System State")
		fmt.Fprintln(m.out, "4. Exit")
		choice, err := m.readInt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		switch {
		case err != nil:
			fmt.Fprintln(m.out, "\nInvalid choice! Please try again.")
			continue
		case choice == 1:
			err = m.simulate(ctx)
		case choice == 2:
			err = m.addProcess(ctx)
		case choice == 3:
			err = m.runtime.DisplayState(m.out)
		case choice == 4:
			fmt.Fprintln(m.out, "\nExiting system...")
			return nil
		default:
			fmt.Fprintln(m.out, "\nInvalid choice! Please try again.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(m.out, "\n[ERROR] %v\n", err)
		}
	}
}

func (m *menu) simulate(ctx context.Context) error {
	m.banner("PRODUCER-CONSUMER SIMULATION")
	producers, err := m.readInt("Enter number of producer threads (minimum 2): ")
	if err != nil {
		return err
	}
	if producers < pipeline.MinProducers {
		fmt.Fprintf(m.out, "Warning: At least %d producers required. Setting to %d.\n", pipeline.MinProducers, pipeline.MinProducers)
		producers = pipeline.MinProducers
	}
	bufferSize, err := m.readInt("Enter buffer size: ")
	if err != nil {
		return err
	}
	total, err := m.readInt("Enter total number of processes to generate: ")
	if err != nil {
		return err
	}
	m.config.Pipeline.Producers = producers
	m.config.Pipeline.BufferSize = bufferSize
	m.config.Pipeline.TotalProcesses = total
	if m.config.Policy().NeedsQuantum(total) {
		quantum, err := m.readInt("Enter time quantum for Round Robin: ")
		if err != nil {
			return err
		}
		m.config.Scheduler.Quantum = quantum
	}
	if err = m.config.Validate(); err != nil {
		return err
	}
	_, err = m.runtime.Simulate(ctx)
	return err
}

func (m *menu) addProcess(ctx context.Context) error {
	m.banner("ADD PROCESS MANUALLY")
	var values [4]int
	for i, prompt := range []string{"Enter Process ID: ", "Enter Arrival Time: ", "Enter Burst Time: ", "Enter Priority (lower = higher priority): "} {
		value, err := m.readInt(prompt)
		if err != nil {
			return err
		}
		values[i] = value
	}
	fmt.Fprintf(m.out, "Enter resource requirements [%d types]:\n", m.config.Resources.Types)
	demand := model.Zero(m.config.Resources.Types)
	for i := range demand {
		value, err := m.readInt(fmt.Sprintf("  Resource R%d: ", i+1))
		if err != nil {
			return err
		}
		demand[i] = value
	}
	p := model.NewProcess(values[0], values[1], values[2], values[3], demand)
	safe, err := m.runtime.AddProcess(ctx, p)
	if err != nil {
		return err
	}
	if safe {
		fmt.Fprintf(m.out, "\n[SUCCESS] Process P%d added and resources allocated safely.\n", p.ID)
		return nil
	}
	fmt.Fprintf(m.out, "\n[WARNING] Process P%d added but would cause unsafe state!\n", p.ID)
	fmt.Fprintln(m.out, "Process will be blocked during execution.")
	return nil
}
