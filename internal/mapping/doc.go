// Package mapping turns a loosely shaped contract tree into the typed wire
// contract when no external engine is available.
//
// Every logical field is resolved by probing a fixed, ordered list of key
// aliases; the first key present with a non-empty value wins. The alias
// lists are data (see aliases.go) so they can be read and tested on their
// own. Keys are compared after identifier normalization, so "primary_key",
// "primaryKey" and "PrimaryKey" are the same key.
//
// # Accepted Shapes
//
// Current shape (sequence of schema entries, columns under properties):
//
//	schema:
//	  - name: orders
//	    properties:
//	      - name: id
//	        logicalType: integer
//	        primaryKey: true
//
// Legacy shape (entries keyed by name, columns keyed by name):
//
//	models:
//	  orders:
//	    fields:
//	      id:
//	        type: integer
//	        pk: true
//	      customer_id:
//	        type: integer
//	        references: customers.id
//
// # Unknown Keys
//
// Keys matching no alias are kept in the Extra bag of the wire struct so they
// survive export, and are reported as unknown_field warnings with the
// closest known keys as suggestions. Alias keys that lost to a higher
// priority alias are kept silently.
package mapping
