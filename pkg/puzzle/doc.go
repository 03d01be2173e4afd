// Package puzzle generates Bitcoin address batches and searches bounded key
// ranges for a target address, as in the Bitcoin puzzle transaction.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
//
//	client := puzzle.NewClient()
//
//	addr, err := client.GenerateSingleAddress(
//	    "0000000000000000000000000000000000000000000000000000000000000001", true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(addr) // 1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH
//
// # Searching
//
// A search draws random keys from a range and stops at the first key whose
// compressed or uncompressed address equals the target:
//
//	p, _ := puzzle.PuzzleByID(puzzle.DefaultPuzzleID)
//	cursor, err := client.PuzzleCursor(p.ID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for {
//	    result, err := cursor.Next(ctx, 10000)
//	    if err != nil || result.Found {
//	        break
//	    }
//	    fmt.Printf("%.8f%%\n", cursor.Progress())
//	}
//
// # Samplers
//
// Searches use keyspace.MaskSampler by default, which is fast but biased and
// may draw keys above the end of the range. Select the exact sampler with:
//
//	client := puzzle.NewClient().WithSampler(&keyspace.UniformSampler{})
package puzzle
