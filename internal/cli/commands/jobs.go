package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/printmarket-dev/printmarket/internal/cli/client"
	"github.com/printmarket-dev/printmarket/internal/cli/output"
	"github.com/spf13/cobra"
)

// NewJobsCmd creates the jobs command group
func NewJobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"job"},
		Short:   "Manage printing jobs",
	}

	cmd.AddCommand(newJobsListCmd())
	cmd.AddCommand(newJobsMatchingCmd())
	cmd.AddCommand(newJobsGetCmd())
	cmd.AddCommand(newJobsCreateCmd())
	cmd.AddCommand(newJobsUpdateCmd())
	cmd.AddCommand(newJobsDeleteCmd())
	cmd.AddCommand(newJobsPublishCmd())

	return cmd
}

func newJobsListCmd() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List your jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsList(state, WithContext(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Only show jobs in this state (DRAFT, OPEN, CLOSED, IN_PROGRESS, COMPLETED)")

	return cmd
}

func runJobsList(state string, opts ...Option) error {
	filter, err := parseJobState(state)
	if err != nil {
		return err
	}

	o, err := resolve(opts)
	if err != nil {
		return err
	}

	jobs, err := o.api.ListJobs(o.ctx, filter)
	if err != nil {
		return withLoginHint(err)
	}

	if len(jobs) == 0 && *o.format == output.FormatTable {
		fmt.Fprintln(o.out, "No jobs found.")
		fmt.Fprintln(o.out, "\nCreate a job with: printmarket jobs create")
		return nil
	}

	return printJobs(o, jobs)
}

func newJobsMatchingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "matching",
		Short: "List open jobs matching your printer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsMatching(WithContext(cmd.Context()))
		},
	}
}

func runJobsMatching(opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	jobs, err := o.api.MatchingJobs(o.ctx)
	if err != nil {
		return withLoginHint(err)
	}

	if len(jobs) == 0 && *o.format == output.FormatTable {
		fmt.Fprintln(o.out, "No matching jobs right now.")
		return nil
	}

	return printJobs(o, jobs)
}

func newJobsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <job-uuid>",
		Short: "Show a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsGet(args[0], WithContext(cmd.Context()))
		},
	}
}

func runJobsGet(jobUUID string, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	job, err := o.api.GetJob(o.ctx, jobUUID)
	if err != nil {
		return withLoginHint(err)
	}

	return printJob(o, job)
}

// jobFlags holds the editable job fields shared by create and update
type jobFlags struct {
	productType      string
	quantity         int
	dueDate          string
	description      string
	instructions     string
	fileURL          string
	file             string
	biddingHours     int
	deliveryLocation string
	pickup           bool
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.productType, "product-type", "", "Product type: "+joinProductTypes())
	cmd.Flags().IntVar(&f.quantity, "quantity", 0, "Number of items to print")
	cmd.Flags().StringVar(&f.dueDate, "due-date", "", "Due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&f.description, "description", "", "Job description")
	cmd.Flags().StringVar(&f.instructions, "instructions", "", "Special instructions for the printer")
	cmd.Flags().StringVar(&f.fileURL, "file-url", "", "Reference of an already uploaded file")
	cmd.Flags().StringVar(&f.file, "file", "", "Artwork file to upload and attach")
	cmd.Flags().IntVar(&f.biddingHours, "bidding-hours", 24, "How long printers can bid, in hours")
	cmd.Flags().StringVar(&f.deliveryLocation, "delivery-location", "", "Where the prints should be delivered")
	cmd.Flags().BoolVar(&f.pickup, "pickup", false, "Prefer picking up the prints")
}

func newJobsCreateCmd() *cobra.Command {
	var f jobFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft job",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsCreate(f, WithContext(cmd.Context()))
		},
	}

	f.register(cmd)

	return cmd
}

func runJobsCreate(f jobFlags, opts ...Option) error {
	job := client.JobCreate{
		ProductType:          client.ProductType(strings.ToUpper(f.productType)),
		Quantity:             f.quantity,
		Description:          f.description,
		SpecialInstructions:  f.instructions,
		FileURL:              f.fileURL,
		BiddingDurationHours: f.biddingHours,
		DeliveryLocation:     f.deliveryLocation,
		PickupPreferred:      f.pickup,
	}

	if f.dueDate != "" {
		due, err := parseDueDate(f.dueDate)
		if err != nil {
			return err
		}
		job.DueDate = due
	}

	o, err := resolve(opts)
	if err != nil {
		return err
	}

	// Upload the artwork first so the job can reference it
	if f.file != "" {
		if err := job.Validate(); err != nil {
			return err
		}

		result, err := uploadPath(o, f.file)
		if err != nil {
			return err
		}
		job.FileURL = result.FileURL
	}

	created, err := o.api.CreateJob(o.ctx, job)
	if err != nil {
		return withLoginHint(err)
	}

	return printJob(o, created)
}

func newJobsUpdateCmd() *cobra.Command {
	var f jobFlags

	cmd := &cobra.Command{
		Use:   "update <job-uuid>",
		Short: "Update a draft job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := f.update(cmd)
			if err != nil {
				return err
			}
			return runJobsUpdate(args[0], update, f.file, WithContext(cmd.Context()))
		},
	}

	f.register(cmd)

	return cmd
}

// update builds a partial update from the flags the user actually set
func (f *jobFlags) update(cmd *cobra.Command) (client.JobUpdate, error) {
	var u client.JobUpdate
	changed := cmd.Flags().Changed

	if changed("product-type") {
		pt := client.ProductType(strings.ToUpper(f.productType))
		u.ProductType = &pt
	}
	if changed("quantity") {
		u.Quantity = &f.quantity
	}
	if changed("due-date") {
		due, err := parseDueDate(f.dueDate)
		if err != nil {
			return u, err
		}
		u.DueDate = &due
	}
	if changed("description") {
		u.Description = &f.description
	}
	if changed("instructions") {
		u.SpecialInstructions = &f.instructions
	}
	if changed("file-url") {
		u.FileURL = &f.fileURL
	}
	if changed("bidding-hours") {
		u.BiddingDurationHours = &f.biddingHours
	}
	if changed("delivery-location") {
		u.DeliveryLocation = &f.deliveryLocation
	}
	if changed("pickup") {
		u.PickupPreferred = &f.pickup
	}

	return u, nil
}

func runJobsUpdate(jobUUID string, update client.JobUpdate, file string, opts ...Option) error {
	if update.IsEmpty() && file == "" {
		return fmt.Errorf("nothing to update, pass at least one field flag")
	}

	o, err := resolve(opts)
	if err != nil {
		return err
	}

	if file != "" {
		result, err := uploadPath(o, file)
		if err != nil {
			return err
		}
		update.FileURL = &result.FileURL
	}

	job, err := o.api.UpdateJob(o.ctx, jobUUID, update)
	if err != nil {
		return withLoginHint(err)
	}

	return printJob(o, job)
}

func newJobsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job-uuid>",
		Short: "Delete a draft job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsDelete(args[0], WithContext(cmd.Context()))
		},
	}
}

func runJobsDelete(jobUUID string, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	if err := o.api.DeleteJob(o.ctx, jobUUID); err != nil {
		return withLoginHint(err)
	}

	fmt.Fprintf(o.out, "✓ Deleted job %s\n", jobUUID)
	return nil
}

func newJobsPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <job-uuid>",
		Short: "Publish a draft job so printers can bid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsPublish(args[0], WithContext(cmd.Context()))
		},
	}
}

func runJobsPublish(jobUUID string, opts ...Option) error {
	o, err := resolve(opts)
	if err != nil {
		return err
	}

	job, err := o.api.PublishJob(o.ctx, jobUUID)
	if err != nil {
		return withLoginHint(err)
	}

	return printJob(o, job)
}

func printJobs(o *options, jobs []client.Job) error {
	if handled, err := output.Encode(o.out, *o.format, jobs); handled {
		return err
	}

	t := output.NewTable(o.out, "UUID", "PRODUCT", "QUANTITY", "STATE", "DUE", "CREATED")
	for _, job := range jobs {
		t.Row(job.UUID, job.ProductType, job.Quantity, job.State, job.DueDate, job.CreatedAt)
	}
	return t.Flush()
}

func printJob(o *options, job *client.Job) error {
	if handled, err := output.Encode(o.out, *o.format, job); handled {
		return err
	}

	t := output.NewTable(o.out, "FIELD", "VALUE")
	t.Row("uuid", job.UUID)
	t.Row("state", job.State)
	t.Row("product_type", job.ProductType)
	t.Row("quantity", job.Quantity)
	t.Row("due_date", job.DueDate)
	t.Row("description", output.Deref(job.Description, "-"))
	t.Row("special_instructions", output.Deref(job.SpecialInstructions, "-"))
	t.Row("file", output.Deref(job.FileURL, "-"))
	t.Row("bidding_duration_hours", job.BiddingDurationHours)
	t.Row("bidding_ends_at", output.Deref(job.BiddingEndsAt, "-"))
	t.Row("delivery_location", output.Deref(job.DeliveryLocation, "-"))
	t.Row("pickup_preferred", job.PickupPreferred)
	t.Row("created_at", job.CreatedAt)
	t.Row("published_at", output.Deref(job.PublishedAt, "-"))
	return t.Flush()
}

func parseJobState(s string) (client.JobState, error) {
	if s == "" {
		return "", nil
	}
	state := client.JobState(strings.ToUpper(s))
	for _, known := range client.JobStates {
		if state == known {
			return state, nil
		}
	}
	return "", fmt.Errorf("unknown job state '%s'", s)
}

// parseDueDate accepts a plain date or a full RFC3339 timestamp
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date '%s', use YYYY-MM-DD or RFC3339", s)
}

func joinProductTypes() string {
	names := make([]string, len(client.ProductTypes))
	for i, pt := range client.ProductTypes {
		names[i] = string(pt)
	}
	return strings.Join(names, ", ")
}
