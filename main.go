//
// skillshare
// ==========
// A REST service for users, articles and reviews stored in MongoDB.
//
// Boot the server:
// ----------------
// $ SKILLSHARE_MONGO_URI=mongodb://localhost:27017 go run .
// $ go run . serve --store memory
//
// Client requests:
// ----------------
// $ curl -X POST -d '{"username":"alice","skills":[],"interests":[]}' http://localhost:3333/users
// {"id":"65f1c2a9e4b0a1b2c3d4e5f6","username":"alice","skills":[],"interests":[],"image_url":"..."}
//
// $ curl -X PUT -d '{"bio":"hi"}' http://localhost:3333/users/alice
// {"id":"65f1c2a9e4b0a1b2c3d4e5f6","username":"alice",...,"bio":"hi",...}
//
// $ curl http://localhost:3333/articles?sortby=ASC
// {"articles":[...]}
//
// $ curl -X DELETE http://localhost:3333/users/65f1c2a9e4b0a1b2c3d4e5f6
// (204, empty body)
//
// Route docs: `go run . routes`
//
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SergeyParamoshkin/skillshare/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
