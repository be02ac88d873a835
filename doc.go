// Package essaysearch is a client for a semantic essay search service.
//
// The service owns embedding, retrieval and insight summarization. This
// module sends queries to it, validates replies, and presents them through a
// search page that can be rendered as terminal text or served as HTML.
//
//	client, err := essaysearch.New(config.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	p, _ := client.NewPage()
//	p.SetQuery("how do startups find ideas")
//	_ = p.Submit(ctx)
//	view := p.View()
package essaysearch
