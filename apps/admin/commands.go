package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/news"
	syncer "github.com/maqomuz/maktab/core/sync"
	"github.com/maqomuz/maktab/services/audit"
)

// seed writes the built-in fallback content into the offline snapshot, so a
// fresh deployment has something to serve before the first sync.
func (cli *commandLine) seed() error {
	now := time.Now().UTC()
	snap := syncer.Snapshot{
		News:      news.Fallback(now),
		Employees: employee.Fallback(now),
		LastSync:  now,
	}
	if err := syncer.Store(cli.kv, snap); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "seeded %d news, %d employees\n", len(snap.News), len(snap.Employees))
	return nil
}

func (cli *commandLine) export(path string) error {
	snap, err := syncer.Load(cli.kv)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(cli.out, string(data))
		return nil
	}
	return ioutil.WriteFile(path, data, 0644)
}

func (cli *commandLine) report() error {
	entries, err := audit.LoadEntries(cli.kv)
	if err != nil {
		return err
	}
	rep := audit.Summarize(entries, time.Now())

	fmt.Fprintf(cli.out, "events (24h):     %d\n", rep.TotalEvents)
	fmt.Fprintf(cli.out, "failed logins:    %d\n", rep.FailedLogins)
	fmt.Fprintf(cli.out, "suspicious:       %d\n", rep.Suspicious)
	fmt.Fprintf(cli.out, "security alerts:  %d\n", rep.SecurityAlerts)
	return nil
}

func (cli *commandLine) clearLogs() error {
	if err := audit.ClearEntries(cli.kv); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "security log cleared")
	return nil
}
