package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"evcharge/booking"
	"evcharge/client"
	"evcharge/session"
	"evcharge/timefmt"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "evcharge:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: evcharge <command> [flags]

commands:
  login            authenticate and store the session
  logout           discard the stored session
  whoami           show the stored session
  stations         list charging stations
  bookings         list bookings visible to the current role
  show <id>        show one booking with its available actions
  book             create a booking
  update <id>      move an own booking to a new time window
  cancel <id>      cancel an own booking
  confirm <id>     confirm a booking (operator)
  cancel-op <id>   cancel a booking with a reason (operator)
  notifications    list notifications
  mark-read <id>…  mark notifications as read`)
}

type cli struct {
	api     *client.Client
	store   *session.Store
	session session.Session
	hasAuth bool
}

// sessionToken adapts the stored session to the client's token source.
type sessionToken struct {
	store *session.Store
}

func (s sessionToken) Token() (string, bool) {
	sess, ok, err := s.store.Load()
	if err != nil || !ok {
		return "", false
	}
	return sess.Token, true
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}

	baseURL := os.Getenv("EVCHARGE_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	store, err := session.DefaultStore()
	if err != nil {
		return err
	}

	c := &cli{
		api:   client.New(baseURL, client.NewDefaultHTTPClient(15*time.Second), sessionToken{store: store}),
		store: store,
	}
	if sess, ok, err := store.Load(); err != nil {
		return err
	} else if ok {
		c.session = sess
		c.hasAuth = true
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.store.Clear()
	case "whoami":
		return c.whoami()
	case "stations":
		return c.stations(ctx, rest)
	case "bookings":
		return c.bookings(ctx)
	case "show":
		return c.show(ctx, rest)
	case "book":
		return c.book(ctx, rest)
	case "update":
		return c.update(ctx, rest)
	case "cancel":
		return c.cancel(ctx, rest)
	case "confirm":
		return c.confirm(ctx, rest)
	case "cancel-op":
		return c.cancelByOperator(ctx, rest)
	case "notifications":
		return c.notifications(ctx, rest)
	case "mark-read":
		return c.markRead(ctx, rest)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	pass := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := c.api.Login(ctx, *email, *pass)
	if err != nil {
		return err
	}

	role, ok := resp.User.ClientRole()
	if !ok {
		return fmt.Errorf("server returned unsupported role %d", resp.User.Role)
	}
	if err := c.store.Save(resp.Token, role, resp.User.NIC, resp.User.StationID); err != nil {
		return err
	}

	fmt.Printf("logged in as %s %s (%s)\n", resp.User.FirstName, resp.User.LastName, role)
	return nil
}

func (c *cli) whoami() error {
	if !c.hasAuth {
		return errors.New("not logged in")
	}
	fmt.Printf("nic:\t%s\nrole:\t%s\n", c.session.NIC, c.session.Role)
	if c.session.StationID != "" {
		fmt.Printf("station:\t%s\n", c.session.StationID)
	}
	return nil
}

func (c *cli) stations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stations", flag.ContinueOnError)
	all := fs.Bool("all", false, "include inactive stations")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		stations []client.Station
		err      error
	)
	if *all {
		stations, err = c.api.Stations(ctx)
	} else {
		stations, err = c.api.ActiveStations(ctx)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tSLOTS\tPER HOUR")
	for _, s := range stations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%.2f\n",
			s.ID, s.Name, s.Location, s.AvailableSlots, s.TotalSlots, s.PricePerHour)
	}
	return w.Flush()
}

func (c *cli) bookings(ctx context.Context) error {
	var (
		list []client.Booking
		err  error
	)
	switch c.session.Role {
	case booking.RoleOperator:
		list, err = c.api.Bookings(ctx)
	default:
		list, err = c.api.MyBookings(ctx)
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATION\tSTART\tEND\tSTATUS\tTOTAL")
	for _, b := range list {
		d := b.Status.Display()
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, stationLabel(b), timefmt.Format(b.StartTime.Time),
			timefmt.Format(b.EndTime.Time), d.Label, totalLabel(b))
	}
	return w.Flush()
}

func (c *cli) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("show: expected exactly one booking id")
	}
	b, err := c.api.Booking(ctx, args[0])
	if err != nil {
		return err
	}

	d := b.Status.Display()
	fmt.Printf("booking:\t%s\nstation:\t%s\nstart:\t%s\nend:\t%s\nstatus:\t%s (%s)\ntotal:\t%s\n",
		b.ID, stationLabel(*b), timefmt.Format(b.StartTime.Time),
		timefmt.Format(b.EndTime.Time), d.Label, d.Color, totalLabel(*b))
	if b.QRCode != "" {
		fmt.Printf("qr:\t%s\n", b.QRCode)
	}

	actions := booking.LegalActions(b.Status, c.session.Role)
	if len(actions) == 0 {
		fmt.Println("actions:\tnone")
		return nil
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	fmt.Printf("actions:\t%s\n", strings.Join(parts, ", "))
	return nil
}

func (c *cli) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	stationID := fs.String("station", "", "station id")
	start := fs.String("start", "", "start time, e.g. 2026-09-01T10:00:00Z")
	end := fs.String("end", "", "end time")
	if err := fs.Parse(args); err != nil {
		return err
	}

	startAt, err := timefmt.Parse(*start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	endAt, err := timefmt.Parse(*end)
	if err != nil {
		return fmt.Errorf("invalid -end: %w", err)
	}

	b, err := c.api.CreateBooking(ctx, client.CreateBookingRequest{
		StationID: *stationID,
		StartTime: timefmt.New(startAt),
		EndTime:   timefmt.New(endAt),
	})
	if err != nil {
		return err
	}

	fmt.Printf("created booking %s, total %s, qr %s\n", b.ID, totalLabel(*b), b.QRCode)
	return nil
}

func (c *cli) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	start := fs.String("start", "", "new start time, e.g. 2026-09-01T10:00:00Z")
	end := fs.String("end", "", "new end time")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("update: expected exactly one booking id")
	}

	var req client.UpdateBookingRequest
	if *start != "" {
		startAt, err := timefmt.Parse(*start)
		if err != nil {
			return fmt.Errorf("invalid -start: %w", err)
		}
		req.StartTime = timefmt.New(startAt)
	}
	if *end != "" {
		endAt, err := timefmt.Parse(*end)
		if err != nil {
			return fmt.Errorf("invalid -end: %w", err)
		}
		req.EndTime = timefmt.New(endAt)
	}

	b, err := c.api.UpdateBooking(ctx, fs.Arg(0), req)
	if err != nil {
		return err
	}

	fmt.Printf("updated booking %s, %s to %s, total %s\n",
		b.ID, timefmt.Format(b.StartTime.Time), timefmt.Format(b.EndTime.Time), totalLabel(*b))
	return nil
}

func (c *cli) cancel(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("cancel: expected exactly one booking id")
	}
	b, err := c.api.Booking(ctx, args[0])
	if err != nil {
		return err
	}

	overlay := booking.NewOverlay()
	if err := overlay.ApplyOwnerCancel(b.ID, b.Status); err != nil {
		return fmt.Errorf("cannot cancel a %s booking: %w", b.Status, err)
	}
	if err := c.api.CancelBooking(ctx, b.ID); err != nil {
		return err
	}
	fmt.Printf("cancelled booking %s\n", b.ID)
	return nil
}

func (c *cli) confirm(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("confirm: expected exactly one booking id")
	}
	b, err := c.api.Booking(ctx, args[0])
	if err != nil {
		return err
	}

	overlay := booking.NewOverlay()
	if err := overlay.ApplyConfirm(b.ID, b.Status); err != nil {
		return fmt.Errorf("cannot confirm a %s booking: %w", b.Status, err)
	}
	if err := c.api.ConfirmBooking(ctx, b.ID); err != nil {
		return err
	}
	fmt.Printf("confirmed booking %s\n", b.ID)
	return nil
}

func (c *cli) cancelByOperator(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel-op", flag.ContinueOnError)
	reason := fs.String("reason", "", "cancellation reason shown to the owner")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("cancel-op: expected exactly one booking id")
	}
	id := fs.Arg(0)

	b, err := c.api.Booking(ctx, id)
	if err != nil {
		return err
	}

	overlay := booking.NewOverlay()
	if err := overlay.ApplyOperatorCancel(b.ID, b.Status); err != nil {
		return fmt.Errorf("cannot cancel a %s booking: %w", b.Status, err)
	}
	if err := c.api.CancelByOperator(ctx, id, *reason); err != nil {
		return err
	}
	fmt.Printf("cancelled booking %s\n", id)
	return nil
}

func (c *cli) notifications(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ContinueOnError)
	unread := fs.Bool("unread", false, "only unread notifications")
	limit := fs.Int("limit", 20, "maximum entries")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		list []client.Notification
		err  error
	)
	if *unread {
		list, err = c.api.UnreadNotifications(ctx)
	} else {
		list, err = c.api.Notifications(ctx, true, *limit)
	}
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no notifications")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tREAD\tTITLE\tMESSAGE")
	for _, n := range list {
		read := " "
		if n.IsRead {
			read = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			n.ID, timefmt.Format(n.CreatedAt.Time), read, n.Title, n.Message)
	}
	return w.Flush()
}

func (c *cli) markRead(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("mark-read: expected at least one notification id")
	}
	if err := c.api.MarkNotificationsRead(ctx, args); err != nil {
		return err
	}
	fmt.Printf("marked %d notification(s) read\n", len(args))
	return nil
}

func stationLabel(b client.Booking) string {
	if b.StationName != "" {
		return b.StationName
	}
	return b.StationID
}

// totalLabel renders the charged amount, falling back when the server
// reports an amount that cannot be displayed.
func totalLabel(b client.Booking) string {
	if b.TotalAmount < 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.2f", b.TotalAmount)
}
