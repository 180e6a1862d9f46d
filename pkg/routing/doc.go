// Package routing resolves named routes into URLs. Forms post to
// "<base>.store" and "<base>.update", so the table also knows the resource
// conventions and can mount named handlers on chi or gin routers.
package routing
