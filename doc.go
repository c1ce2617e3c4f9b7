// Package schedsim provides a deadlock-avoiding process scheduling
// simulator.
//
// Processes declare a maximum demand over a fixed pool of resource types.
// A Banker's ledger grants a demand only when the system stays safe, and a
// scheduling engine runs the admitted processes with either non-preemptive
// priority or round-robin scheduling, chosen by how many processes are ready
// at time zero. Simulations feed the engine through a bounded
// producer/consumer pipeline:
//
//	srv, _ := schedsim.New(schedsim.WithConfig(config))
//	rt := srv.Runtime()
//	result, _ := rt.Simulate(ctx)
//	fmt.Println(result.Schedule.Status, result.Summary.AvgWaiting)
//
// Processes can also be entered manually with Runtime.AddProcess or loaded
// from a workload file and scheduled with Runtime.Execute.
package schedsim
