// Package wire defines the typed, partially-optional shapes of a data
// contract document as it appears on the wire.
//
// These structs describe the canonical (v3) shape the serializer emits and
// the external engine returns. Older and looser shapes are mapped onto them
// by package mapping. Keys not covered by a field are kept in Extra so they
// survive a round trip.
//
// # Shape Overview
//
//	apiVersion: v3.0.2
//	kind: DataContract
//	id: 53581432-6c55-4ba2-a65f-72344a91553a
//	domain: sales
//	schema:
//	  - id: 0b6b0bbf-...
//	    name: orders
//	    tags: [finance, "dataLevel:gold"]
//	    properties:
//	      - id: 1c0d...
//	        name: customer_id
//	        logicalType: integer
//	        physicalType: bigint
//	        required: true
//	        relationships:
//	          - to: customers.id
//	            customProperties:
//	              - property: cardinality
//	                value: one-to-one
//	        customProperties:
//	          - property: order
//	            value: 0
//	          - property: is_foreign_key
//	            value: true
//	      - name: lines
//	        logicalType: array
//	        items:
//	          logicalType: object
//	          properties:
//	            - name: sku
//	              logicalType: string
//	    compoundKeys:
//	      - id: 9f2e...
//	        columnIds: [1c0d..., 7a1b...]
//	        isPrimary: true
package wire
