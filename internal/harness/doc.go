// Package harness runs translation fixture suites.
//
// # Suite Format
//
// Suites are defined in YAML files with the following structure:
//
//	name: movies
//	description: "What this suite covers"
//	schema: movies.yaml        # relative to the suite file
//	dialect: basic             # basic, postgres, mysql or sqlite
//	seed: movies.sql           # optional sqlite script for row checks
//	cases:
//	  - name: join table
//	    query: MATCH (p:Person)-[:ACTED_IN]->(m:Movie) RETURN p.name
//	    sql: SELECT t0.name FROM "people" t0 INNER JOIN ...
//	    rows:
//	      - [Grace]
//	  - name: variable length
//	    query: MATCH (a)-[*1..3]->(b) RETURN a
//	    error: VARIABLE_LENGTH_UNSUPPORTED
//
// Each case expects either exact SQL or an error code. Error codes are the
// ones reported by mapping.ErrorCode. Cases run in parallel against one
// shared Translator; their results are reported in suite order.
//
// # Usage
//
//	suite, err := harness.LoadSuite("testdata/movies_suite.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := harness.Run(ctx, suite)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range report.Failed() {
//	    log.Println(c.Name, c.Errors)
//	}
package harness
