// Seeds a small demo pathway store so the API has something to serve on a
// fresh checkout. The real store is produced by the nightly refresh; this
// writes the same schema with a synthetic two-trust tree.
package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/config"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS pathway_nodes (
	date_filter_id INTEGER,
	chart_type TEXT,
	parents TEXT,
	ids TEXT,
	labels TEXT,
	level INTEGER,
	value INTEGER,
	cost TEXT,
	costpp TEXT,
	cost_pp_pa TEXT,
	avg_days TEXT,
	first_seen TEXT,
	last_seen TEXT,
	first_seen_parent TEXT,
	last_seen_parent TEXT,
	average_spacing TEXT,
	average_administered TEXT,
	trust_name TEXT,
	directory TEXT,
	drug_sequence TEXT
);

CREATE TABLE IF NOT EXISTS pathway_refresh_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	status TEXT,
	source_row_count INTEGER,
	started_at TEXT,
	completed_at TEXT
);

CREATE TABLE IF NOT EXISTS drug_indication_clusters (
	drug TEXT,
	indication TEXT
);
`

type seedNode struct {
	parents      string
	ids          string
	labels       string
	level        int
	value        int
	cost         string
	costPPPA     string
	avgDays      string
	firstSeen    string
	lastSeen     string
	spacing      string
	administered string
	trustName    string
	directory    string
	drugSequence string
}

func trustTree(trust string, scale int) []seedNode {
	prefix := "ROOT - " + trust
	return []seedNode{
		{parents: "ROOT", ids: prefix, labels: trust, level: 1, value: 3 * scale, trustName: trust},
		{parents: prefix, ids: prefix + " - RHEUMATOLOGY", labels: "RHEUMATOLOGY", level: 2, value: 2 * scale, trustName: trust, directory: "RHEUMATOLOGY"},
		{parents: prefix, ids: prefix + " - GASTROENTEROLOGY", labels: "GASTROENTEROLOGY", level: 2, value: scale, trustName: trust, directory: "GASTROENTEROLOGY"},
		{
			parents: prefix + " - RHEUMATOLOGY", ids: prefix + " - RHEUMATOLOGY - ADALIMUMAB",
			labels: "ADALIMUMAB", level: 3, value: 2 * scale,
			cost: "250000.00", costPPPA: "9800.00", avgDays: "410.5",
			firstSeen: "2019-04-01", lastSeen: "2024-03-31",
			spacing:      "<b>ADALIMUMAB</b><br>On average given 24.0 times with a 2.0 weekly interval (48.0 weeks total treatment length)",
			administered: "[24.0]",
			trustName:    trust, directory: "RHEUMATOLOGY", drugSequence: "ADALIMUMAB",
		},
		{
			parents: prefix + " - GASTROENTEROLOGY", ids: prefix + " - GASTROENTEROLOGY - INFLIXIMAB",
			labels: "INFLIXIMAB", level: 3, value: scale,
			cost: "180000.00", costPPPA: "12400.00", avgDays: "365.0",
			firstSeen: "2020-01-15", lastSeen: "2024-02-29",
			spacing:      "<b>INFLIXIMAB</b><br>On average given 8.0 times with a 6.0 weekly interval (48.0 weeks total treatment length)",
			administered: "[8.0]",
			trustName:    trust, directory: "GASTROENTEROLOGY", drugSequence: "INFLIXIMAB",
		},
		{
			parents: prefix + " - RHEUMATOLOGY - ADALIMUMAB", ids: prefix + " - RHEUMATOLOGY - ADALIMUMAB - ETANERCEPT",
			labels: "ETANERCEPT", level: 4, value: scale / 2,
			firstSeen: "2021-06-01", lastSeen: "2024-03-31",
			trustName: trust, directory: "RHEUMATOLOGY", drugSequence: "ADALIMUMAB|ETANERCEPT",
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		log.Fatalf("Failed to create store directory: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		for _, table := range []string{"pathway_nodes", "pathway_refresh_log", "drug_indication_clusters"} {
			if _, err := db.Exec("DELETE FROM " + table); err != nil {
				log.Fatalf("Failed to reset %s: %v", table, err)
			}
		}
	}

	nodes := []seedNode{{ids: "ROOT", labels: "ROOT", level: 0, value: 450}}
	nodes = append(nodes, trustTree("NORFOLK AND NORWICH", 100)...)
	nodes = append(nodes, trustTree("JAMES PAGET", 50)...)

	insert := `INSERT INTO pathway_nodes
		(date_filter_id, chart_type, parents, ids, labels, level, value, cost, costpp, cost_pp_pa, avg_days,
		 first_seen, last_seen, first_seen_parent, last_seen_parent, average_spacing, average_administered,
		 trust_name, directory, drug_sequence)
		VALUES (1, 'trust', ?, ?, ?, ?, ?, ?, 'N/A', ?, ?, ?, ?, '', '', ?, ?, ?, ?, ?)`
	for _, n := range nodes {
		if _, err := db.Exec(insert,
			n.parents, n.ids, n.labels, n.level, n.value,
			n.cost, n.costPPPA, n.avgDays, n.firstSeen, n.lastSeen,
			n.spacing, n.administered, n.trustName, n.directory, n.drugSequence,
		); err != nil {
			log.Fatalf("Failed to insert node %s: %v", n.ids, err)
		}
	}
	log.Printf("Seeded %d pathway nodes", len(nodes))

	indications := map[string]string{
		"ADALIMUMAB": "Rheumatoid arthritis",
		"ETANERCEPT": "Rheumatoid arthritis",
		"INFLIXIMAB": "Crohn's disease",
	}
	for drug, indication := range indications {
		if _, err := db.Exec(
			"INSERT INTO drug_indication_clusters (drug, indication) VALUES (?, ?)",
			drug, indication,
		); err != nil {
			log.Fatalf("Failed to insert indication for %s: %v", drug, err)
		}
	}
	log.Printf("Seeded %d drug indications", len(indications))

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	if _, err := db.Exec(
		"INSERT INTO pathway_refresh_log (status, source_row_count, started_at, completed_at) VALUES (?, ?, ?, ?)",
		"completed", len(nodes), now, now,
	); err != nil {
		log.Fatalf("Failed to record refresh: %v", err)
	}

	log.Printf("Demo store written to %s", cfg.Store.Path)
}
