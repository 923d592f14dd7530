package cli

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"listing-service/internal/adapters/listing_client"
	"listing-service/internal/adapters/rest"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filtercodec"
	"listing-service/internal/core/port"
	"listing-service/internal/core/usecase"
	"listing-service/schemas"
)

type searchOptions struct {
	favorites bool
	admin     bool
	page      int
	sort      string
	bedrooms  []int
	bathrooms []int
	asJSON    bool
}

func (c *CLI) newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search listings with a site filter query",
		Long: `Search listings with the same query string the site uses, for example:

  listingctl search 'distrito=Lisboa&bedrooms=2,3&maxPrice=400000'
  listingctl search 'transactionType=rent' --sort "Lowest price" --page 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			return c.runSearch(cmd, raw, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.favorites, "favorites", false, "show only favorites of --owner on the current page")
	cmd.Flags().BoolVar(&opts.admin, "admin", false, "use the admin view (12 per page, status from query)")
	cmd.Flags().IntVar(&opts.page, "page", 0, "page number, overrides the query")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "sort key (-createdAt, price, ...) or its label")
	cmd.Flags().IntSliceVar(&opts.bedrooms, "bedrooms", nil, "bedroom counts, replaces the query value (e.g. 2,3)")
	cmd.Flags().IntSliceVar(&opts.bathrooms, "bathrooms", nil, "bathroom counts, replaces the query value")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	return cmd
}

func (c *CLI) runSearch(cmd *cobra.Command, raw string, opts searchOptions) error {
	ctx := cmd.Context()
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"command": "search"})

	values, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		return fmt.Errorf("invalid query %q: %w", raw, err)
	}

	view := filtercodec.PublicView
	if opts.admin {
		view = filtercodec.AdminView
	}

	if opts.sort != "" {
		key, ok := domain.ParseSortKey(opts.sort)
		if !ok {
			lang, _ := filtercodec.NormalizeLang(values.Get(filtercodec.KeyLang))
			if key, ok = filtercodec.SortKeyFromLabel(opts.sort, lang); !ok {
				return fmt.Errorf("unknown sort %q", opts.sort)
			}
		}
		values = filtercodec.Patch(values, filtercodec.KeySortBy, string(key))
	}
	if len(opts.bedrooms) > 0 {
		values = filtercodec.PatchInts(values, filtercodec.KeyBedrooms, opts.bedrooms)
	}
	if len(opts.bathrooms) > 0 {
		values = filtercodec.PatchInts(values, filtercodec.KeyBathrooms, opts.bathrooms)
	}
	if opts.page > 0 {
		values = filtercodec.WithPage(values, opts.page)
	}

	out := newUI(cmd.OutOrStdout())
	filter, issues := filtercodec.Decode(values, view)
	for _, issue := range issues {
		logger.Debug("Ignoring malformed query parameter", port.Fields{"param": issue.Key, "value": issue.Value, "reason": issue.Reason})
		if !opts.asJSON {
			out.printWarning("ignoring %s", issue)
		}
	}

	registry, err := contracts.NewRegistry(schemas.SchemasFS)
	if err != nil {
		return err
	}
	client := listing_client.NewListingServiceAPIClient(c.apiURL, c.timeout, registry)

	var favorites port.FavoritesStorePort
	if opts.favorites {
		store, err := c.favoritesStore()
		if err != nil {
			return err
		}
		favorites = store
	}

	result, err := usecase.NewListPropertiesUseCase(client, favorites).Execute(ctx, domain.ListingRequest{
		Filter:        filter,
		FavoritesOnly: opts.favorites,
		Owner:         c.owner,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if opts.asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rest.ToListingResponse(result))
	}
	printListing(out, result, filtercodec.Encode(filter, view))
	return nil
}

func printListing(out *ui, view *domain.ListingView, query url.Values) {
	if view.Empty() {
		out.printInfo("No properties match the current filters.")
		return
	}

	out.printPageHeader(view)
	out.printPropertyTable(view.Items)

	if !view.NextDisabled {
		out.printNewline()
		out.printNextStep("Next page", fmt.Sprintf("listingctl search '%s'", filtercodec.WithPage(query, view.Page+1).Encode()))
	}
}
