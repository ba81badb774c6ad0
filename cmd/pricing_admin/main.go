package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/pricing-service/internal/transport/grpc/pricing"
)

// Usage:
//
//	pricing_admin -method Quote '{"entityId":"...","currency":"EGP"}'
//	pricing_admin -demo
func main() {
	addr := flag.String("addr", "localhost:9090", "admin gRPC address")
	method := flag.String("method", "ListEvents", "admin method to call")
	demo := flag.Bool("demo", false, "create a sample plan, apply medical prices and quote it")
	timeout := flag.Duration("timeout", 10*time.Second, "per-call timeout")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	client := pricing.NewClient(conn)
	call := func(name string, req map[string]any) map[string]any {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		out, err := client.Call(ctx, name, req)
		if err != nil {
			log.Fatalf("%s failed: %v", name, err)
		}
		printStruct(name, out)
		return out.AsMap()
	}

	if *demo {
		runDemo(call)
		return
	}

	req := map[string]any{}
	if body := flag.Arg(0); body != "" {
		in := new(structpb.Struct)
		if err := protojson.Unmarshal([]byte(body), in); err != nil {
			log.Fatalf("Invalid request body: %v", err)
		}
		req = in.AsMap()
	}
	call(*method, req)
}

func runDemo(call func(string, map[string]any) map[string]any) {
	created := call("CreateEntity", map[string]any{
		"kind":            "subscription_plan",
		"name":            "Demo Gold",
		"durationDays":    90,
		"giftDays":        14,
		"discountPercent": "10",
		"prices": []any{
			map[string]any{"currency": "EGP", "amount": "1500"},
			map[string]any{"currency": "SAR", "amount": "120"},
			map[string]any{"currency": "USD", "amount": "35"},
		},
	})
	id, _ := created["entityId"].(string)

	call("ApplyMedicalPrices", map[string]any{"entityId": id, "factorPercent": 20})
	call("UpdateLoyalty", map[string]any{"entityId": id, "type": "NORMAL", "enabled": true, "pointsAwarded": 150})
	call("Quote", map[string]any{"entityId": id, "currency": "EGP", "locale": "ar"})
	call("Checkout", map[string]any{"entityId": id, "userId": "demo-user", "currency": "USD", "type": "MEDICAL"})
	call("ListEvents", map[string]any{"aggregateId": id, "limit": 20})
}

func printStruct(name string, s *structpb.Struct) {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		log.Fatalf("Failed to encode %s response: %v", name, err)
	}
	fmt.Fprintf(os.Stdout, "== %s\n%s\n\n", name, out)
}
