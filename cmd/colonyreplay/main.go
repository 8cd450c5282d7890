package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"colonymind/internal/persistence"
	"colonymind/internal/world"
)

func main() {
	var (
		snapPath = flag.String("snapshot", "", "path to .snap.zst")
		verbose  = flag.Bool("v", false, "list every object and record")
	)
	flag.Parse()

	if *snapPath == "" {
		fmt.Fprintln(os.Stderr, "missing -snapshot")
		os.Exit(2)
	}

	snap, err := persistence.ReadSnapshot(*snapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read snapshot:", err)
		os.Exit(1)
	}

	fmt.Printf("snapshot v%d tick=%d seed=%d objects=%d records=%d\n",
		snap.Header.Version, snap.Header.Tick, snap.Header.Seed,
		len(snap.Objects), len(snap.Records))

	byCategory := map[world.Category]int{}
	for _, o := range snap.Objects {
		byCategory[o.Category]++
	}
	cats := make([]world.Category, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	for _, c := range cats {
		fmt.Printf("  %-12s %d\n", c, byCategory[c])
	}

	byRole := map[string]int{}
	for _, r := range snap.Records {
		if r.Role != "" {
			byRole[r.Role]++
		}
	}
	roles := make([]string, 0, len(byRole))
	for name := range byRole {
		roles = append(roles, name)
	}
	sort.Strings(roles)
	for _, name := range roles {
		fmt.Printf("  role %-10s %d\n", name, byRole[name])
	}

	if !*verbose {
		return
	}
	for _, o := range snap.Objects {
		fmt.Printf("object %s name=%q category=%s pos=(%d,%d) energy=%d/%d hits=%d/%d ttl=%d\n",
			o.ID, o.Name, o.Category, o.Pos.X, o.Pos.Y, o.Energy, o.EnergyCap, o.Hits, o.HitsMax, o.TTL)
	}
	for _, r := range snap.Records {
		fmt.Printf("record %s role=%q task=%s target=%s targeters=%d\n",
			r.ID, r.Role, r.TaskKind, r.TargetID, len(r.Targeters))
	}
}
