/*
Package storagemodels defines the data structures shared by datastore implementations.

QueryParams describes a DynamoDB query:

	params := &QueryParams{
	    KeyConditionExpression: "PK1 = :pk",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk": &types.AttributeValueMemberS{Value: "CATALOG"},
	    },
	    IndexName: aws.String("GSI1"),
	}
*/
package storagemodels
