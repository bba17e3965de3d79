package vocab

// Built-in vocabularies, one per supported business domain. Callers may
// also load their own from YAML; these cover the common datasets.

// Builtin returns a fresh built-in vocabulary by domain name.
func Builtin(domain string) (*Vocabulary, bool) {
	switch domain {
	case "banking":
		return Banking(), true
	case "insurance":
		return Insurance(), true
	case "ecommerce":
		return Ecommerce(), true
	case "healthcare":
		return Healthcare(), true
	case "telecom":
		return Telecom(), true
	default:
		return nil, false
	}
}

// Builtins returns the built-in domain names in alphabetical order.
func Builtins() []string {
	return []string{"banking", "ecommerce", "healthcare", "insurance", "telecom"}
}

// Banking returns the vocabulary for retail banking datasets.
func Banking() *Vocabulary {
	return &Vocabulary{
		Domain: "banking",
		TimestampKeywords: []string{
			"date", "time", "timestamp", "created", "updated", "opened",
			"closed", "applied", "approved", "disbursed", "txn",
		},
		TimestampExclusions: []string{
			"birth", "dob", "expiry", "maturity", "valid",
		},
		EventLabels: []string{
			"Account Opened", "KYC Completed", "Login", "Deposit Made",
			"Withdrawal Made", "UPI Payment", "Card Issued",
			"Card Activated", "Loan Applied", "Loan Approved",
			"Loan Disbursed", "EMI Paid", "Complaint Raised",
			"Complaint Resolved", "Account Closed",
		},
		ValueTriggers: map[string][]string{
			"Account Opened":     {"account opened", "account_open", "new account", "onboard"},
			"KYC Completed":      {"kyc", "verification complete", "identity verified"},
			"Login":              {"login", "logged in", "signin", "sign in"},
			"Deposit Made":       {"deposit", "credit", "cash in"},
			"Withdrawal Made":    {"withdraw", "debit", "cash out", "atm"},
			"UPI Payment":        {"upi", "vpa"},
			"Card Issued":        {"card issued", "card_issue", "new card"},
			"Card Activated":     {"card activated", "card activation"},
			"Loan Applied":       {"loan appl", "loan request"},
			"Loan Approved":      {"loan approv", "sanction"},
			"Loan Disbursed":     {"disburs"},
			"EMI Paid":           {"emi", "installment", "instalment"},
			"Complaint Raised":   {"complaint raised", "ticket opened", "grievance"},
			"Complaint Resolved": {"complaint resolved", "ticket closed", "resolved"},
			"Account Closed":     {"account closed", "closure"},
		},
		CaseStartLabels: []string{
			"Account Opened", "Loan Applied", "Card Issued", "Complaint Raised",
		},
		ColumnEvents: map[string]string{
			"account_opened":  "Account Opened",
			"kyc_completed":   "KYC Completed",
			"last_login":      "Login",
			"loan_applied":    "Loan Applied",
			"loan_approved":   "Loan Approved",
			"loan_disbursed":  "Loan Disbursed",
			"emi_paid":        "EMI Paid",
			"card_issued":     "Card Issued",
			"card_activated":  "Card Activated",
			"account_closed":  "Account Closed",
			"complaint":       "Complaint Raised",
			"txn":             "Deposit Made",
			"transaction":     "Deposit Made",
		},
		EntityIDPatterns: []string{
			"customer_id", "account_holder_id", "cust_id", "customer_no",
			"user_id", "account_id",
		},
		CaseIDPatterns: []string{
			"case_id", "journey_id", "session_id", "application_id",
		},
		EventColumnNames: []string{
			"event_name", "event_type", "event", "action", "activity",
			"status", "txn_type", "transaction_type",
		},
		DefaultLabel: "Login",
		Explanations: map[string]string{
			"Account Opened":   "A new account was opened for the customer",
			"KYC Completed":    "The customer's identity verification was completed",
			"Login":            "The customer signed in to the banking channel",
			"Deposit Made":     "Money was credited into the account",
			"Withdrawal Made":  "Money was debited from the account",
			"UPI Payment":      "A UPI transfer was made from the account",
			"Loan Applied":     "The customer applied for a loan",
			"Loan Approved":    "The loan application was approved",
			"Loan Disbursed":   "The sanctioned loan amount was disbursed",
			"EMI Paid":         "A loan installment was paid",
			"Complaint Raised": "The customer raised a service complaint",
			"Account Closed":   "The account was closed",
		},
	}
}

// Insurance returns the vocabulary for policy and claim datasets.
func Insurance() *Vocabulary {
	return &Vocabulary{
		Domain: "insurance",
		TimestampKeywords: []string{
			"date", "time", "timestamp", "issued", "filed", "paid",
			"approved", "renewed", "effective", "reported",
		},
		TimestampExclusions: []string{
			"birth", "dob", "expiry", "valid_until",
		},
		EventLabels: []string{
			"Policy Quoted", "Policy Issued", "Premium Paid",
			"Claim Filed", "Claim Reviewed", "Claim Approved",
			"Claim Rejected", "Claim Paid", "Policy Renewed",
			"Policy Lapsed", "Policy Cancelled",
		},
		ValueTriggers: map[string][]string{
			"Policy Quoted":    {"quote", "quotation"},
			"Policy Issued":    {"policy issued", "issuance", "inception"},
			"Premium Paid":     {"premium", "renewal payment"},
			"Claim Filed":      {"claim filed", "claim regist", "fnol", "first notice"},
			"Claim Reviewed":   {"claim review", "under review", "assessment", "survey"},
			"Claim Approved":   {"claim approv"},
			"Claim Rejected":   {"claim reject", "repudiat"},
			"Claim Paid":       {"claim paid", "claim settle", "payout"},
			"Policy Renewed":   {"renew"},
			"Policy Lapsed":    {"lapse"},
			"Policy Cancelled": {"cancel", "surrender"},
		},
		CaseStartLabels: []string{
			"Policy Quoted", "Policy Issued", "Claim Filed",
		},
		ColumnEvents: map[string]string{
			"policy_issued":  "Policy Issued",
			"policy_start":   "Policy Issued",
			"premium_paid":   "Premium Paid",
			"claim_filed":    "Claim Filed",
			"claim_reported": "Claim Filed",
			"claim_approved": "Claim Approved",
			"claim_paid":     "Claim Paid",
			"claim_settled":  "Claim Paid",
			"renewal":        "Policy Renewed",
			"cancellation":   "Policy Cancelled",
		},
		EntityIDPatterns: []string{
			"policyholder_id", "policy_holder_id", "insured_id",
			"member_id", "customer_id",
		},
		CaseIDPatterns: []string{
			"claim_id", "case_id", "policy_id", "claim_no",
		},
		EventColumnNames: []string{
			"event_name", "event_type", "event", "action", "activity",
			"status", "claim_status", "policy_status",
		},
		DefaultLabel: "Policy Quoted",
		Explanations: map[string]string{
			"Policy Quoted":  "A quotation was prepared for the policyholder",
			"Policy Issued":  "The policy came into force",
			"Premium Paid":   "A premium payment was received",
			"Claim Filed":    "The policyholder reported a claim",
			"Claim Reviewed": "The claim was assessed by the insurer",
			"Claim Approved": "The claim was approved for settlement",
			"Claim Rejected": "The claim was rejected",
			"Claim Paid":     "The claim amount was paid out",
			"Policy Renewed": "The policy was renewed for a new term",
		},
	}
}

// Ecommerce returns the vocabulary for order and fulfillment datasets.
func Ecommerce() *Vocabulary {
	return &Vocabulary{
		Domain: "ecommerce",
		TimestampKeywords: []string{
			"date", "time", "timestamp", "created", "placed", "shipped",
			"delivered", "ordered", "paid",
		},
		TimestampExclusions: []string{
			"birth", "dob",
		},
		EventLabels: []string{
			"Account Created", "Login", "Cart Updated", "Checkout Started",
			"Order Placed", "Payment Success", "Payment Failed",
			"Order Shipped", "Order Delivered", "Return Requested",
			"Refund Issued", "Review Posted",
		},
		ValueTriggers: map[string][]string{
			"Account Created":  {"account created", "signup", "sign up", "registered"},
			"Login":            {"login", "logged in", "signin", "sign in"},
			"Cart Updated":     {"cart", "add to cart", "added to cart"},
			"Checkout Started": {"checkout"},
			"Order Placed":     {"order placed", "ordered", "purchase", "order created"},
			"Payment Success":  {"payment success", "paid", "payment complete", "payment captured"},
			"Payment Failed":   {"payment fail", "declined"},
			"Order Shipped":    {"shipped", "dispatch"},
			"Order Delivered":  {"delivered"},
			"Return Requested": {"return", "rma"},
			"Refund Issued":    {"refund"},
			"Review Posted":    {"review", "rating"},
		},
		CaseStartLabels: []string{
			"Order Placed", "Return Requested", "Account Created",
		},
		ColumnEvents: map[string]string{
			"order_placed":    "Order Placed",
			"order_created":   "Order Placed",
			"payment":         "Payment Success",
			"paid":            "Payment Success",
			"shipped":         "Order Shipped",
			"delivered":       "Order Delivered",
			"return":          "Return Requested",
			"refund":          "Refund Issued",
			"signup":          "Account Created",
			"last_login":      "Login",
		},
		EntityIDPatterns: []string{
			"customer_id", "user_id", "buyer_id", "shopper_id", "cust_id",
		},
		CaseIDPatterns: []string{
			"order_id", "case_id", "session_id", "cart_id",
		},
		EventColumnNames: []string{
			"event_name", "event_type", "event", "action", "activity",
			"status", "order_status",
		},
		DefaultLabel: "Login",
		Explanations: map[string]string{
			"Order Placed":     "The customer placed an order",
			"Payment Success":  "The order payment went through",
			"Payment Failed":   "The order payment was declined",
			"Order Shipped":    "The order left the warehouse",
			"Order Delivered":  "The order reached the customer",
			"Return Requested": "The customer asked to return the order",
			"Refund Issued":    "The refund was paid back to the customer",
			"Login":            "The customer signed in to the store",
		},
	}
}

// Healthcare returns the vocabulary for patient journey datasets.
func Healthcare() *Vocabulary {
	return &Vocabulary{
		Domain: "healthcare",
		TimestampKeywords: []string{
			"date", "time", "timestamp", "admitted", "discharged",
			"scheduled", "visit", "recorded",
		},
		TimestampExclusions: []string{
			"birth", "dob",
		},
		EventLabels: []string{
			"Patient Registered", "Appointment Scheduled",
			"Appointment Completed", "Diagnosis Recorded",
			"Lab Test Ordered", "Lab Result Ready", "Prescription Issued",
			"Admission", "Discharge", "Follow Up Scheduled", "Bill Paid",
		},
		ValueTriggers: map[string][]string{
			"Patient Registered":    {"register", "enrolled"},
			"Appointment Scheduled": {"appointment sched", "appointment booked", "booked"},
			"Appointment Completed": {"appointment complete", "consult", "visited"},
			"Diagnosis Recorded":    {"diagnos"},
			"Lab Test Ordered":      {"lab order", "test ordered", "sample collected"},
			"Lab Result Ready":      {"lab result", "report ready"},
			"Prescription Issued":   {"prescri", "medication"},
			"Admission":             {"admit", "admission", "inpatient"},
			"Discharge":             {"discharge"},
			"Follow Up Scheduled":   {"follow up", "follow-up", "review visit"},
			"Bill Paid":             {"bill paid", "payment received", "invoice settled"},
		},
		CaseStartLabels: []string{
			"Patient Registered", "Appointment Scheduled", "Admission",
		},
		ColumnEvents: map[string]string{
			"registered":   "Patient Registered",
			"appointment":  "Appointment Scheduled",
			"admitted":     "Admission",
			"admission":    "Admission",
			"discharged":   "Discharge",
			"discharge":    "Discharge",
			"diagnosis":    "Diagnosis Recorded",
			"prescription": "Prescription Issued",
			"lab_result":   "Lab Result Ready",
			"follow_up":    "Follow Up Scheduled",
		},
		EntityIDPatterns: []string{
			"patient_id", "mrn", "medical_record_number", "member_id",
			"person_id",
		},
		CaseIDPatterns: []string{
			"encounter_id", "visit_id", "case_id", "admission_id",
		},
		EventColumnNames: []string{
			"event_name", "event_type", "event", "action", "activity",
			"status", "visit_type", "encounter_type",
		},
		DefaultLabel: "Patient Registered",
		Explanations: map[string]string{
			"Patient Registered":    "The patient was registered with the facility",
			"Appointment Scheduled": "An appointment was booked for the patient",
			"Appointment Completed": "The patient attended the appointment",
			"Diagnosis Recorded":    "A diagnosis was recorded for the patient",
			"Admission":             "The patient was admitted",
			"Discharge":             "The patient was discharged",
			"Bill Paid":             "The patient's bill was settled",
		},
	}
}

// Telecom returns the vocabulary for subscriber lifecycle datasets.
func Telecom() *Vocabulary {
	return &Vocabulary{
		Domain: "telecom",
		TimestampKeywords: []string{
			"date", "time", "timestamp", "activated", "recharged",
			"generated", "suspended", "ported",
		},
		TimestampExclusions: []string{
			"birth", "dob", "validity",
		},
		EventLabels: []string{
			"SIM Activated", "Plan Subscribed", "Recharge Done",
			"Data Pack Purchased", "Bill Generated", "Bill Paid",
			"Plan Upgraded", "Complaint Raised", "Complaint Resolved",
			"Service Suspended", "Service Restored", "Number Ported",
		},
		ValueTriggers: map[string][]string{
			"SIM Activated":       {"sim activ", "activation"},
			"Plan Subscribed":     {"plan subscri", "subscription", "enrolled"},
			"Recharge Done":       {"recharge", "top up", "topup", "top-up"},
			"Data Pack Purchased": {"data pack", "data add", "booster"},
			"Bill Generated":      {"bill generat", "invoice raised"},
			"Bill Paid":           {"bill paid", "bill payment", "payment received"},
			"Plan Upgraded":       {"upgrad", "plan change"},
			"Complaint Raised":    {"complaint raised", "ticket opened", "grievance"},
			"Complaint Resolved":  {"complaint resolved", "ticket closed", "resolved"},
			"Service Suspended":   {"suspend", "barred"},
			"Service Restored":    {"restor", "unbarred", "reactivat"},
			"Number Ported":       {"port", "mnp"},
		},
		CaseStartLabels: []string{
			"SIM Activated", "Plan Subscribed", "Complaint Raised",
		},
		ColumnEvents: map[string]string{
			"activated":      "SIM Activated",
			"activation":     "SIM Activated",
			"subscribed":     "Plan Subscribed",
			"recharge":       "Recharge Done",
			"recharged":      "Recharge Done",
			"bill_generated": "Bill Generated",
			"bill_paid":      "Bill Paid",
			"suspended":      "Service Suspended",
			"restored":       "Service Restored",
			"ported":         "Number Ported",
		},
		EntityIDPatterns: []string{
			"subscriber_id", "msisdn", "mobile_number", "customer_id",
			"account_id",
		},
		CaseIDPatterns: []string{
			"case_id", "ticket_id", "session_id", "service_request_id",
		},
		EventColumnNames: []string{
			"event_name", "event_type", "event", "action", "activity",
			"status", "request_type",
		},
		DefaultLabel: "Plan Subscribed",
		Explanations: map[string]string{
			"SIM Activated":     "The subscriber's SIM was activated",
			"Plan Subscribed":   "The subscriber enrolled in a plan",
			"Recharge Done":     "The subscriber recharged the account",
			"Bill Generated":    "A bill was generated for the subscriber",
			"Bill Paid":         "The subscriber paid the bill",
			"Complaint Raised":  "The subscriber raised a complaint",
			"Service Suspended": "The subscriber's service was suspended",
		},
	}
}
