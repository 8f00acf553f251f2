package constant

// DefaultEmailQuery is the Gmail search the backend applies when the process
// request does not carry one.
const DefaultEmailQuery = "subject:(bid invitation) OR subject:(request for proposal) OR subject:(RFP)"

// DefaultEmailMaxResults caps how many messages one process run inspects.
const DefaultEmailMaxResults = 10
