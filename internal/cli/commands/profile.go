package commands

import (
	"fmt"
	"strings"

	"github.com/printmarket-dev/printmarket/internal/cli/client"
	"github.com/printmarket-dev/printmarket/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your business profile",
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileCustomerCmd())
	cmd.AddCommand(newProfilePrinterCmd())

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileShow(WithContext(cmd.Context()))
		},
	}
}

func runProfileShow(opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	profile, err := o.api.MyProfile(o.ctx)
	if err != nil {
		return withLoginHint(err)
	}

	if handled, err := output.Encode(o.out, *o.format, profile); handled {
		return err
	}

	switch {
	case profile.CustomerProfile != nil:
		return printCustomerProfile(o, profile.CustomerProfile)
	case profile.PrinterProfile != nil:
		return printPrinterProfile(o, profile.PrinterProfile)
	default:
		fmt.Fprintln(o.out, "No profile yet.")
		fmt.Fprintln(o.out, "\nCreate one with: printmarket profile customer|printer")
		return nil
	}
}

func newProfileCustomerCmd() *cobra.Command {
	var in client.CustomerProfileInput

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Create or update your customer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfileCustomer(in, WithContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&in.CompanyName, "company-name", "", "Company name")
	cmd.Flags().StringVar(&in.ContactName, "contact-name", "", "Contact person")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&in.Address, "address", "", "Postal address")

	return cmd
}

func runProfileCustomer(in client.CustomerProfileInput, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	profile, err := o.api.SaveCustomerProfile(o.ctx, in)
	if err != nil {
		return withLoginHint(err)
	}

	if handled, err := output.Encode(o.out, *o.format, profile); handled {
		return err
	}

	fmt.Fprintln(o.out, "✓ Customer profile saved")
	return printCustomerProfile(o, profile)
}

// printerFlags holds the printer profile flags; list flags are comma separated
type printerFlags struct {
	in           client.PrinterProfileInput
	productTypes []string
	minQuantity  int
	maxQuantity  int
}

func (f *printerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in.BusinessName, "business-name", "", "Business name (required)")
	cmd.Flags().StringVar(&f.in.ContactName, "contact-name", "", "Contact person")
	cmd.Flags().StringVar(&f.in.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&f.in.Email, "email", "", "Business email")
	cmd.Flags().StringVar(&f.in.Address, "address", "", "Postal address")
	cmd.Flags().StringVar(&f.in.Capabilities, "capabilities", "", "Equipment and capabilities")
	cmd.Flags().StringSliceVar(&f.productTypes, "product-types", nil, "Supported product types, comma separated: "+joinProductTypes())
	cmd.Flags().IntVar(&f.minQuantity, "min-quantity", 0, "Smallest order you take")
	cmd.Flags().IntVar(&f.maxQuantity, "max-quantity", 0, "Largest order you take")
	cmd.Flags().StringSliceVar(&f.in.ServiceAreas, "service-areas", nil, "Areas you deliver to, comma separated")
	cmd.Flags().StringVar(&f.in.PaymentTerms, "payment-terms", "", "Payment terms (required)")
	cmd.Flags().BoolVar(&f.in.EmailNotifications, "email-notifications", true, "Receive new job notifications by email")
	cmd.Flags().BoolVar(&f.in.WhatsappNotifications, "whatsapp-notifications", false, "Receive new job notifications on WhatsApp")
	cmd.Flags().StringVar(&f.in.WhatsappNumber, "whatsapp-number", "", "WhatsApp number for notifications")
}

// input builds the request; quantity bounds are only sent when set
func (f *printerFlags) input(cmd *cobra.Command) client.PrinterProfileInput {
	in := f.in

	in.SupportedProductTypes = nil
	for _, pt := range f.productTypes {
		in.SupportedProductTypes = append(in.SupportedProductTypes, client.ProductType(strings.ToUpper(strings.TrimSpace(pt))))
	}

	areas := make([]string, 0, len(f.in.ServiceAreas))
	for _, a := range f.in.ServiceAreas {
		if a = strings.TrimSpace(a); a != "" {
			areas = append(areas, a)
		}
	}
	in.ServiceAreas = areas

	if cmd.Flags().Changed("min-quantity") {
		lo := f.minQuantity
		in.MinQuantity = &lo
	}
	if cmd.Flags().Changed("max-quantity") {
		hi := f.maxQuantity
		in.MaxQuantity = &hi
	}

	return in
}

func newProfilePrinterCmd() *cobra.Command {
	var f printerFlags

	cmd := &cobra.Command{
		Use:   "printer",
		Short: "Create or update your printer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfilePrinter(f.input(cmd), WithContext(cmd.Context()))
		},
	}

	f.register(cmd)

	return cmd
}

func runProfilePrinter(in client.PrinterProfileInput, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	profile, err := o.api.SavePrinterProfile(o.ctx, in)
	if err != nil {
		return withLoginHint(err)
	}

	if handled, err := output.Encode(o.out, *o.format, profile); handled {
		return err
	}

	fmt.Fprintln(o.out, "✓ Printer profile saved")
	return printPrinterProfile(o, profile)
}

func printCustomerProfile(o *options, p *client.CustomerProfile) error {
	t := output.NewTable(o.out, "FIELD", "VALUE")
	t.Row("uuid", p.UUID)
	t.Row("company_name", output.Deref(p.CompanyName, "-"))
	t.Row("contact_name", output.Deref(p.ContactName, "-"))
	t.Row("phone", output.Deref(p.Phone, "-"))
	t.Row("address", output.Deref(p.Address, "-"))
	t.Row("created_at", p.CreatedAt)
	return t.Flush()
}

func printPrinterProfile(o *options, p *client.PrinterProfile) error {
	t := output.NewTable(o.out, "FIELD", "VALUE")
	t.Row("uuid", p.UUID)
	t.Row("business_name", p.BusinessName)
	t.Row("contact_name", output.Deref(p.ContactName, "-"))
	t.Row("email", output.Deref(p.Email, "-"))
	t.Row("phone", output.Deref(p.Phone, "-"))
	t.Row("supported_product_types", p.SupportedProductTypes)
	t.Row("quantity_range", quantityRange(p.MinQuantity, p.MaxQuantity))
	t.Row("service_areas", output.Deref(p.ServiceAreas, "-"))
	t.Row("payment_terms", p.PaymentTerms)
	t.Row("email_notifications", p.EmailNotifications)
	t.Row("whatsapp_notifications", p.WhatsappNotifications)
	t.Row("created_at", p.CreatedAt)
	return t.Flush()
}

func quantityRange(lo, hi *int) string {
	switch {
	case lo == nil && hi == nil:
		return "any"
	case hi == nil:
		return fmt.Sprintf("%d+", *lo)
	case lo == nil:
		return fmt.Sprintf("up to %d", *hi)
	default:
		return fmt.Sprintf("%d-%d", *lo, *hi)
	}
}
