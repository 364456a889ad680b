package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "auth":
		handleAuth(args)
	case "property":
		handleProperty(args)
	case "receipt":
		handleReceipt(args)
	case "rental":
		handleRental(args)
	case "dashboard":
		showDashboard(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: propertydesk auth <register|login|logout|who>")
		return
	}

	switch args[0] {
	case "register":
		registerUser(args[1:])
	case "login":
		loginUser(args[1:])
	case "logout":
		logoutUser()
	case "who":
		whoAmI()
	default:
		fmt.Printf("unknown auth command: %s\n", args[0])
	}
}

func handleProperty(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: propertydesk property <list|delete>")
		return
	}

	switch args[0] {
	case "list":
		listProperties()
	case "delete":
		deleteResource("properties", args[1:])
	default:
		fmt.Printf("unknown property command: %s\n", args[0])
	}
}

func handleReceipt(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: propertydesk receipt <list|delete>")
		return
	}

	switch args[0] {
	case "list":
		listReceipts()
	case "delete":
		deleteResource("receipts", args[1:])
	default:
		fmt.Printf("unknown receipt command: %s\n", args[0])
	}
}

func handleRental(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: propertydesk rental <list|overdue|remind>")
		return
	}

	switch args[0] {
	case "list":
		listRentals()
	case "overdue":
		listOverdue()
	case "remind":
		sendReminder(args[1:])
	default:
		fmt.Printf("unknown rental command: %s\n", args[0])
	}
}

// Auth commands
func registerUser(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")
	role := fs.String("role", "", "role (optional)")

	fs.Parse(args)

	if *name == "" || *email == "" || *password == "" {
		fmt.Println("Error: name, email, and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{
		"name":     *name,
		"email":    *email,
		"password": *password,
	}
	if *role != "" {
		payload["role"] = *role
	}

	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/auth/register", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 201 {
		fmt.Printf("✓ User registered: %s\n", *email)
		if token, ok := result["token"].(string); ok {
			saveToken(token)
		}
	} else {
		fmt.Printf("✗ Registration failed: %v\n", result)
	}
}

func loginUser(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "user email")
	password := fs.String("password", "", "password")

	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: email and password are required")
		fs.PrintDefaults()
		return
	}

	payload := map[string]string{"email": *email, "password": *password}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(getAPIURL()+"/auth/login", "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		if token, ok := result["token"].(string); ok {
			saveToken(token)
			fmt.Printf("✓ Logged in as: %s\n", *email)
		}
	} else {
		fmt.Printf("✗ Login failed: %v\n", result)
	}
}

func logoutUser() {
	os.Remove(tokenFile())
	fmt.Println("✓ Logged out")
}

func whoAmI() {
	token := loadToken()
	if token == "" {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("✓ Logged in (token: %s...)\n", token[:20])
}

// Listing commands
func listProperties() {
	var properties []map[string]interface{}
	if !getJSON("/properties", &properties) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tLOCATION\tPRICE")
	for _, p := range properties {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
			p["id"], p["name"], p["type"], p["status"], p["location"], p["price"])
	}
	w.Flush()
}

func listReceipts() {
	var receipts []map[string]interface{}
	if !getJSON("/receipts", &receipts) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECEIPT NO\tTYPE\tAMOUNT\tPAID BY\tDATE")
	for _, rc := range receipts {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
			rc["id"], rc["receiptNo"], rc["type"], rc["amount"], rc["paidBy"], rc["date"])
	}
	w.Flush()
}

func listRentals() {
	var rentals []map[string]interface{}
	if !getJSON("/rentals", &rentals) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTENANT\tPROPERTY\tMONTHLY RENT\tPAID UNTIL")
	for _, rt := range rentals {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n",
			rt["id"], rt["tenantId"], rt["propertyId"], rt["monthlyRent"], rt["paidUntil"])
	}
	w.Flush()
}

func listOverdue() {
	var overdue []map[string]interface{}
	if !getJSON("/reminders/overdue", &overdue) {
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RENTAL\tTENANT\tPROPERTY\tRENT\tPAID UNTIL\tDAYS OVERDUE")
	for _, o := range overdue {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\t%v\n",
			o["rentalId"], o["tenantName"], o["propertyName"], o["monthlyRent"], o["paidUntil"], o["daysOverdue"])
	}
	w.Flush()
}

func sendReminder(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: propertydesk rental remind <rental-id>")
		return
	}

	payload, _ := json.Marshal(map[string]string{"rentalId": args[0]})
	req, _ := http.NewRequest("POST", getAPIURL()+"/reminders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	addAuthHeader(req)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if resp.StatusCode == 200 {
		fmt.Printf("✓ Reminder sent to %v\n", result["recipient"])
	} else {
		fmt.Printf("✗ Reminder failed: %v\n", result)
	}
}

func showDashboard(args []string) {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	period := fs.String("period", "this_month", "this_week, this_month, this_year, or all")
	fs.Parse(args)

	var summary map[string]interface{}
	if !getJSON("/dashboard?period="+*period, &summary) {
		return
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}

func deleteResource(resource string, args []string) {
	if len(args) < 1 {
		fmt.Printf("Usage: propertydesk %s delete <id>\n", resource)
		return
	}

	req, _ := http.NewRequest("DELETE", getAPIURL()+"/"+resource+"/"+args[0], nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == 200 {
		fmt.Println("✓ Deleted")
	} else {
		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		fmt.Printf("✗ Delete failed: %v\n", result)
	}
}

// Helper functions
func getJSON(path string, dst interface{}) bool {
	req, _ := http.NewRequest("GET", getAPIURL()+path, nil)
	addAuthHeader(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		var result map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&result)
		fmt.Printf("✗ Request failed: %v\n", result)
		return false
	}

	json.NewDecoder(resp.Body).Decode(dst)
	return true
}

func getAPIURL() string {
	if url := os.Getenv("PROPERTYDESK_API"); url != "" {
		return url
	}
	return "http://localhost:8080/api"
}

func tokenFile() string {
	home, _ := os.UserHomeDir()
	return home + "/.propertydesk/token"
}

func saveToken(token string) error {
	os.MkdirAll(os.Getenv("HOME")+"/.propertydesk", 0700)
	return os.WriteFile(tokenFile(), []byte(token), 0600)
}

func loadToken() string {
	data, _ := os.ReadFile(tokenFile())
	return string(data)
}

func addAuthHeader(req *http.Request) {
	token := loadToken()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func printUsage() {
	fmt.Print(`PropertyDesk CLI

Usage:
  propertydesk <command> [options]

Commands:
  auth       User authentication (register, login, logout, who)
  property   Property operations (list, delete)
  receipt    Receipt operations (list, delete)
  rental     Rental operations (list, overdue, remind)
  dashboard  Show dashboard summary (-period this_week|this_month|this_year|all)
  help       Show this help message

Environment Variables:
  PROPERTYDESK_API    API endpoint (default: http://localhost:8080/api)

Examples:
  propertydesk auth register -name "A. Said" -email user@example.com -password secret123
  propertydesk auth login -email user@example.com -password secret123
  propertydesk property list
  propertydesk rental overdue
  propertydesk dashboard -period this_month
`)
}
