// fifocheck exercises both gofifo storage variants with randomized
// bulk round-trips, appends the verdicts to a log file, prints the JSON
// reports, and records every run in a SQLite ledger.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/Disen-Shaw/gofifo/control"
	"github.com/Disen-Shaw/gofifo/fifo"
	"github.com/Disen-Shaw/gofifo/pump"
	"github.com/Disen-Shaw/gofifo/verify"
)

// Embedded-variant capacity is pinned by the array type below; the -cap
// flag only sizes the external ring.
const fixedCap = 1024

func main() {
	var (
		loops    = flag.Int("loops", 50000, "round-trip iterations per variant")
		frameLen = flag.Int("frame", 17, "elements per frame")
		capacity = flag.Int("cap", 1024, "external ring capacity (power of two)")
		seed     = flag.Int64("seed", 0, "payload seed, 0 = time-based")
		logPath  = flag.String("log", "fifocheck.log", "verdict log file, empty to skip")
		dbPath   = flag.String("db", "fifocheck.db", "run ledger database, empty to skip")
	)
	flag.Parse()

	storage := make([]byte, *capacity)
	external, err := fifo.Wrap(storage)
	if err != nil {
		log.Fatalf("external ring: %v", err)
	}
	embedded := fifo.NewFixed[byte, [fixedCap]byte]()

	runs := []struct {
		name string
		ring verify.Transfer
	}{
		{"external", external},
		{"embedded", embedded},
	}

	var ledger *verify.Ledger
	if *dbPath != "" {
		ledger, err = verify.OpenLedger(*dbPath)
		if err != nil {
			log.Fatalf("open ledger: %v", err)
		}
		defer ledger.Close()
	}

	failed := false
	publish := func(rep verify.Report) {
		raw, err := rep.JSON()
		dropError("encode report", err)
		fmt.Println(string(raw))

		if *logPath != "" {
			appendVerdict(*logPath, rep)
		}
		if ledger != nil {
			dropError("record run", ledger.Record(rep))
		}
		if !rep.OK {
			failed = true
			log.Printf("%s: FAILED: %s", rep.Variant, rep.Failure)
		}
	}

	for _, run := range runs {
		publish(verify.Runner{
			Variant:    run.name,
			Iterations: *loops,
			FrameLen:   *frameLen,
			Seed:       *seed,
		}.Run(run.ring))
	}
	publish(runPumped(*loops, *capacity))

	if failed {
		os.Exit(1)
	}
}

// runPumped streams a monotonic sequence through a third ring drained by
// a pinned consumer, checking cross-goroutine ordering end to end.  The
// verdict is reported like the round-trip phases, one element per frame.
func runPumped(loops, capacity int) verify.Report {
	rep := verify.Report{
		Variant:    "pumped",
		StartedAt:  time.Now(),
		Iterations: loops,
		FrameLen:   1,
	}

	r, err := fifo.New[uint64](capacity)
	if err != nil {
		rep.Failure = err.Error()
		return rep
	}

	var (
		next     uint64
		ordered  = true
		received = make(chan struct{})
		done     = make(chan struct{})
	)
	stop, hot := control.Flags()
	pump.Consume(1, r, stop, hot, func(v uint64) {
		if v != next {
			ordered = false
		}
		next++
		if next == uint64(loops) {
			close(received)
		}
	}, done)

	start := time.Now()
	for i := uint64(0); i < uint64(loops); i++ {
		control.SignalActivity()
		for !r.Push(i) {
			runtime.Gosched()
		}
	}

	select {
	case <-received:
	case <-time.After(30 * time.Second):
		control.Shutdown()
		<-done
		rep.Completed = int(next)
		rep.ElapsedNs = time.Since(start).Nanoseconds()
		rep.Failure = fmt.Sprintf("consumer stalled at %d of %d", next, loops)
		return rep
	}
	control.Shutdown()
	<-done

	rep.Completed = int(next)
	rep.ElapsedNs = time.Since(start).Nanoseconds()
	if !ordered {
		rep.Failure = "sequence arrived out of order"
		return rep
	}
	rep.OK = true
	return rep
}

// appendVerdict adds one human-readable line per run to the log file.
func appendVerdict(path string, rep verify.Report) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		dropError("open log", err)
		return
	}
	defer f.Close()

	verdict := "ok"
	if !rep.OK {
		verdict = "FAILED: " + rep.Failure
	}
	_, err = fmt.Fprintf(f, "%s %s loops=%d frame=%d %s\n",
		rep.StartedAt.Format("2006-01-02T15:04:05"), rep.Variant,
		rep.Iterations, rep.FrameLen, verdict)
	dropError("write log", err)
}

// dropError is a lightweight diagnostic logger for non-fatal paths.
func dropError(prefix string, err error) {
	if err != nil {
		log.Printf("%s: %v", prefix, err)
	}
}
