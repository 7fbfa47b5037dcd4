// cmd/cartprobe/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	appsession "atelier/internal/application/session"
	sessiondom "atelier/internal/domain/session"
	storefrontDI "atelier/internal/platform/di/storefront"
)

// cartprobe boots the session container the same way the storefront does,
// then prints the hydrated state. Useful for poking at a local snapshot db
// or verifying the cart collaborator wiring without the UI.
//
// Examples:
//
//	cartprobe
//	cartprobe -user u_123 -refresh
//	MALL_API_BASE_URL=http://localhost:8080 cartprobe -user u_123 -refresh
func main() {
	var (
		userID  = flag.String("user", "", "set this user id before probing (triggers reconciliation)")
		refresh = flag.Bool("refresh", false, "force a cart refresh from the collaborator")
	)
	flag.Parse()

	ctx := context.Background()

	container, err := storefrontDI.New(ctx, stderrNotifier{})
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer container.Close()

	svc := container.Session

	if *userID != "" {
		svc.SetUser(ctx, &sessiondom.User{ID: *userID})
	}
	if *refresh {
		if err := svc.RefreshCart(ctx); err != nil {
			log.Printf("refresh failed (cart left as-is): %v", err)
		}
	}

	printState(container.Store)
}

func printState(store *appsession.Store) {
	s := store.Snapshot()

	fmt.Printf("initialized: %t\n", s.Initialized)
	if s.User != nil {
		fmt.Printf("user:        %s\n", s.User.ID)
	} else {
		fmt.Println("user:        (none)")
	}

	fmt.Printf("cart lines:  %d\n", len(s.Cart))
	for _, l := range s.Cart {
		fmt.Printf("  - %s  qty=%d  color=%q size=%q  unit=%d  subtotal=%d\n",
			l.Product.ID, l.Quantity, l.SelectedColor, l.SelectedSize, l.Product.Price, l.Subtotal())
	}

	fmt.Printf("items total: %d\n", store.CartItemsCount())
	fmt.Printf("cart total:  %d\n", store.CartTotal())
	fmt.Printf("wishlist:    %v\n", s.Wishlist)
}

// stderrNotifier surfaces backend-first failures on the terminal, standing in
// for the UI alert.
type stderrNotifier struct{}

func (stderrNotifier) Notify(msg string) {
	fmt.Fprintln(os.Stderr, "!! "+msg)
}
