package sqlinline

const QInsertBanner = `--sql 7d2f1a4e-9c3b-4f8e-a1d6-5e8b2c9f0a31
insert into generated_images(id, user_id, template_id, url, user_prompt, seed, resolution, post_topic, saved, created_at)
values ($1::uuid, $2::uuid, nullif($3::text, ''), $4::text, $5::text, $6::int, $7::text, nullif($8::text, ''), false, now())
returning created_at;
`

const QSelectBanner = `--sql 3b8e6c12-4f7a-4d2b-9e05-c1a7d4f86b29
select id, user_id, coalesce(template_id, ''), url, user_prompt, coalesce(seed, 0), resolution, coalesce(post_topic, ''), saved, created_at
from generated_images
where id = $1::uuid and user_id = $2::uuid;
`

const QListBanners = `--sql 5a1c9f73-2d6e-4b18-8c44-f09b3e7a52d8
select id, user_id, coalesce(template_id, ''), url, user_prompt, coalesce(seed, 0), resolution, coalesce(post_topic, ''), saved, created_at
from generated_images
where user_id = $1::uuid
order by created_at desc
limit 100;
`

const QMarkBannerSaved = `--sql 9e4d7b26-1a8f-4c53-b7e9-6d02c5a8f314
update generated_images
set saved = true
where id = $1::uuid and user_id = $2::uuid and saved = false;
`

const QDeleteBannerOwned = `--sql c6f3a8d1-5b92-4e67-81ca-2f74d0b9e465
delete from generated_images
where id = $1::uuid and user_id = $2::uuid;
`

const QSelectStaleUnsaved = `--sql 1f7b4e92-8a3d-4c06-95f1-d28a6c0b3e57
select id, user_id, coalesce(template_id, ''), url, user_prompt, coalesce(seed, 0), resolution, coalesce(post_topic, ''), saved, created_at
from generated_images
where saved = false and created_at < $1::timestamptz
order by created_at asc;
`

const QDeleteBanner = `--sql e2a9c5f4-7d18-4b63-a0e8-94b1f6d27c30
delete from generated_images
where id = $1::uuid;
`
