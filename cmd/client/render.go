package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/linemk/secondhand-shop/internal/viewmodel"
)

var (
	header = color.New(color.Bold).SprintFunc()
	muted  = color.New(color.FgHiBlack).SprintFunc()
	stars  = color.New(color.FgYellow).SprintFunc()
)

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printProducts(cards []viewmodel.ProductCard) {
	if len(cards) == 0 {
		fmt.Println(muted("no products"))
		return
	}
	w := newTable()
	fmt.Fprintln(w, header("ID\tNAME\tPRICE\tSTOCK\tCATEGORY"))
	for _, c := range cards {
		stock := fmt.Sprint(c.Stock)
		if !c.InStock {
			stock = muted("sold out")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Price, stock, c.Category)
	}
	_ = w.Flush()
}

func printDetail(d viewmodel.ProductDetail) {
	fmt.Printf("%s  #%d\n", header(d.Name), d.ID)
	fmt.Printf("price: %s  stock: %d  category: %s  seller: %d\n", d.Price, d.Stock, d.Category, d.SellerID)
	if d.Description != "" {
		fmt.Println(d.Description)
	}
	if d.AverageRating != "" {
		fmt.Printf("rating: %s (%d reviews)\n", d.AverageRating, len(d.Comments))
	}
	for _, c := range d.Comments {
		fmt.Printf("  %s  user %d  %s\n    %s\n", stars(c.Stars), c.UserID, muted(c.CreatedAt), c.Content)
	}
	switch {
	case d.CanBuy && d.CanComment:
		fmt.Println(muted("actions: buy, comment"))
	case d.CanBuy:
		fmt.Println(muted("actions: buy"))
	case d.CanComment:
		fmt.Println(muted("actions: comment"))
	}
}

func printOrders(cards []viewmodel.OrderCard) {
	if len(cards) == 0 {
		fmt.Println(muted("no orders"))
		return
	}
	w := newTable()
	fmt.Fprintln(w, header("ID\tORDER NO\tPRODUCT\tAMOUNT\tSTATUS\tCREATED\tACTIONS"))
	for _, c := range cards {
		actions := ""
		switch {
		case c.CanPay && c.CanCancel:
			actions = "pay, cancel"
		case c.CanPay:
			actions = "pay"
		case c.CanCancel:
			actions = "cancel"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			c.ID, c.OrderNo, c.ProductID, c.Amount, c.StatusLabel, c.CreatedAt, actions)
	}
	_ = w.Flush()
}

func printProfile(p viewmodel.Profile) {
	w := newTable()
	fmt.Fprintf(w, "%s\t%s (#%d)\n", header("user"), p.Username, p.ID)
	fmt.Fprintf(w, "%s\t%s\n", header("email"), p.Email)
	fmt.Fprintf(w, "%s\t%s\n", header("phone"), p.Phone)
	fmt.Fprintf(w, "%s\t%s\n", header("address"), p.Address)
	fmt.Fprintf(w, "%s\t%s\n", header("status"), p.StatusText)
	fmt.Fprintf(w, "%s\t%s\n", header("since"), p.Since)
	fmt.Fprintf(w, "%s\t%d bought, %d sold, %d listed\n", header("stats"), p.Bought, p.Sold, p.Listed)
	_ = w.Flush()
}
