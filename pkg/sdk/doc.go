// Package immigrow embeds the immigration catalog in a Go program without
// the HTTP layer. The client talks to the same storage the API server uses
// (Valkey, Redis or Postgres) and runs the same list pipeline.
//
//	client, _ := immigrow.New(ctx, immigrow.WithValkey("localhost:6379", ""))
//	defer client.Close()
//
//	orgs, _ := client.Organizations(ctx, immigrow.Query{
//	    Search:  "legal aid",
//	    Filters: map[string]string{"state": "TX"},
//	    SortBy:  "name",
//	})
//	for _, o := range orgs.Items {
//	    fmt.Println(o.Name, o.ResourceIDs)
//	}
//
// Seeding takes the raw dataset JSON the immigrow-seed command reads:
//
//	f, _ := os.Open("data/seed.json")
//	report, _ := client.Seed(ctx, f)
package immigrow
