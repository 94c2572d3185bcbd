package fixture

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jask/cardfriends/internal/usersapi"
)

var (
	firstNames = []string{"George", "Janet", "Emma", "Eve", "Charles", "Tracey", "Michael", "Lindsay", "Tobias", "Byron", "George", "Rachel"}
	lastNames  = []string{"Bluth", "Weaver", "Wong", "Holt", "Morris", "Ramos", "Lawson", "Ferguson", "Funke", "Fields", "Edwards", "Howell"}
)

// avatarFaces is the number of stock avatars served by reqres.
const avatarFaces = 12

// Generate builds n synthetic users for paging tests against larger
// datasets. The same seed yields the same users.
func Generate(n, perPage int, seed uint64) (Dataset, error) {
	if n < 0 {
		return Dataset{}, fmt.Errorf("generate: negative user count %d", n)
	}
	if perPage <= 0 {
		return Dataset{}, fmt.Errorf("generate: per_page must be positive")
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	users := make([]usersapi.User, 0, n)
	for i := 1; i <= n; i++ {
		first := firstNames[r.IntN(len(firstNames))]
		last := lastNames[r.IntN(len(lastNames))]
		users = append(users, usersapi.User{
			ID:        i,
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", (i-1)%avatarFaces+1),
		})
	}
	return Dataset{PerPage: perPage, Users: users}, nil
}
